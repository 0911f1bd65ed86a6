// Token generation and validation for the user API.
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server doesn't need to store
// session data. All the information needed (userID, rememberMe, expiry) is
// inside the signed token. The signature ensures nobody can tamper with it
// without the secret key, and expiry is the only invalidation mechanism:
// there is no server-side blacklist, a token stays usable until it expires.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/rmaia/graphql-users/internal/apperror"
)

const tokenIssuer = "graphql-users"

// Claims is the identity a validated token asserts: who the caller is and
// whether they logged in with "remember me" (which only matters for the
// expiry window the token was issued with).
type Claims struct {
	UserID     int64
	RememberMe bool
}

// tokenClaims is the JWT payload. It embeds jwt.RegisteredClaims, which
// carries the standard fields (sub, exp, iat, jti, iss); the user's ID goes
// in "sub" and the remember-me flag is the one custom claim.
type tokenClaims struct {
	RememberMe bool `json:"rememberMe"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the bearer tokens carried on protected
// requests.
//
// It holds the HMAC secret and the two expiry windows (short default, long
// for remember-me). The same secret must be used for both signing and
// verifying — keep it safe, rotate it periodically in production.
type TokenService struct {
	secret        []byte
	ttl           time.Duration
	rememberMeTTL time.Duration
}

// NewTokenService creates a TokenService with the given secret and expiry
// windows. The secret should be at least 32 bytes of random data in
// production. Example: JWT_KEY=$(openssl rand -hex 32)
func NewTokenService(secret string, ttl, rememberMeTTL time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 || rememberMeTTL <= 0 {
		return nil, errors.New("auth: token TTLs must be positive")
	}
	return &TokenService{
		secret:        []byte(secret),
		ttl:           ttl,
		rememberMeTTL: rememberMeTTL,
	}, nil
}

// Generate creates and signs a JWT for the given user.
//
// rememberMe selects the expiry window: the short default TTL normally, the
// long remember-me TTL when set. The flag is also recorded inside the token
// so Validate can hand it back.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key for signing
// and verifying. Fine for a single-server deployment like this one.
func (s *TokenService) Generate(userID int64, rememberMe bool) (string, error) {
	now := time.Now()

	ttl := s.ttl
	if rememberMe {
		ttl = s.rememberMeTTL
	}

	c := tokenClaims{
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tokenIssuer,
			ID:        xid.New().String(), // jti: unique per token, useful in logs
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a bearer token and returns the claims it
// carries.
//
// The two failure modes are part of the API contract:
//   - empty token            → 401 "Token not found"
//   - anything else invalid  → 401 "Invalid token"
//
// "Anything else" covers a bad signature, an expired token, a token signed
// with a different algorithm, or plain garbage — clients get the same
// answer for all of them.
func (s *TokenService) Validate(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, apperror.Unauthorized("Token not found")
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			// Reject tokens that aren't signed with HMAC. Without this
			// check an attacker could try an algorithm-confusion attack
			// (e.g. alg=none). WithValidMethods below also enforces it.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, apperror.Unauthorized("Invalid token")
	}

	c, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, apperror.Unauthorized("Invalid token")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Claims{}, apperror.Unauthorized("Invalid token")
	}

	return Claims{UserID: userID, RememberMe: c.RememberMe}, nil
}
