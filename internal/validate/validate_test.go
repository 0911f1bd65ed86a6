package validate

import "testing"

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits, length 7", "123456a", true},
		{"letters and digits, length 6", "12345a", true},
		{"digits only", "123456", false},
		{"letters only", "abcdef", false},
		{"too short", "12a", false},
		{"empty", "", false},
		{"uppercase letter counts", "123456A", true},
		{"symbols plus letter and digit", "a1!@#$%", true},
		{"exactly minimum with both classes", "abc123", true},
		{"five characters with both classes", "abc12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Password(tt.password); got != tt.want {
				t.Errorf("Password(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain address", "daniel@email.com", true},
		{"country TLD", "seed1@email.com.br", true},
		{"dots and plus in local part", "first.last+tag@example.org", true},
		{"percent and hyphen in local part", "a%b-c@my-host.io", true},
		{"missing at sign", "daniel.email.cm", false},
		{"uppercase local part rejected", "Daniel@email.com", false},
		{"uppercase domain rejected", "daniel@Email.com", false},
		{"one-letter TLD", "daniel@email.c", false},
		{"missing TLD", "daniel@email", false},
		{"empty local part", "@email.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Email(tt.email); got != tt.want {
				t.Errorf("Email(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
