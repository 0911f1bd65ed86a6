// Package repository defines the storage interfaces the rest of the
// application programs against.
//
// The service layer receives a UserRepository (interface), NOT a concrete
// *sqlite.DB. This is "programming to an interface":
//   - TESTING: tests pass an in-memory fake (see service/user_test.go)
//   - FLEXIBILITY: swap SQLite for Postgres by changing one line in main
//   - DECOUPLING: the service never imports the sqlite package at all
package repository

import (
	"context"

	"github.com/rmaia/graphql-users/internal/model"
)

// ListOptions selects a window of the name-ordered user listing.
// Offset/Limit are raw row offsets — the page arithmetic (page → offset)
// lives in the service layer, not here.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository is the user directory: every way the application touches
// persisted user records.
//
// List returns the requested window ordered by name ascending TOGETHER WITH
// the total row count. Fetching both in one call mirrors how the listing
// query needs them (items for the page, count for totalPage/hasNextPage)
// and keeps the two reads adjacent in time.
//
// Create must fail with the application's Conflict error when the email is
// already taken — the uniqueness guarantee belongs to the storage layer,
// where it is atomic, not to a check-then-insert in application code.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts ListOptions) ([]model.User, int, error)
	Delete(ctx context.Context, id int64) error
}
