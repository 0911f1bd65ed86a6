// Package validate holds the pure input-format checks used by the user API.
//
// Both functions are side-effect free: same input, same answer, nothing
// logged, nothing stored. That makes them trivial to test exhaustively —
// see validate_test.go.
package validate

import "regexp"

// emailPattern accepts local@domain.tld where the local part is one or more
// of [a-z0-9._%+-], the domain is dot-separated lowercase/digit labels, and
// the final label has at least 2 letters.
//
// LOWERCASE ONLY, ON PURPOSE:
// The pattern has no uppercase ranges, so "Daniel@email.com" is rejected.
// That is long-standing API behaviour that clients rely on (they lowercase
// before submitting) — widening the pattern would silently change the
// contract, so we keep it exact.
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

// Password reports whether the candidate meets the password rule:
// at least 6 characters, containing at least one letter and at least one
// digit.
//
// A plain loop instead of a regexp: the rule needs two independent
// "contains" checks, which in a single pattern requires lookaheads — and
// Go's RE2 engine deliberately doesn't support those.
func Password(candidate string) bool {
	if len(candidate) < minPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Email reports whether the candidate is a well-formed lowercase address.
func Email(candidate string) bool {
	return emailPattern.MatchString(candidate)
}
