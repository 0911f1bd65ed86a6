// Package model defines the data structures used throughout the application.
package model

// User represents a registered user account.
//
// WHY ID int64?
// The database assigns the ID (INTEGER PRIMARY KEY AUTOINCREMENT) on insert,
// and it never changes afterwards. int64 matches what database/sql returns
// from LastInsertId, so no conversions are needed anywhere.
//
// PasswordHash holds the bcrypt digest — NEVER the plaintext. The json:"-"
// tag makes it impossible to leak through any JSON encoding of a User, and
// the GraphQL layer has no field for it either.
type User struct {
	ID           int64  `json:"id"    db:"id"`
	Name         string `json:"name"  db:"name"`
	Email        string `json:"email" db:"email"` // unique across all users
	PasswordHash string `json:"-"     db:"password_hash"`
}
