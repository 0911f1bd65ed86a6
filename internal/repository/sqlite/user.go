package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rmaia/graphql-users/internal/apperror"
	"github.com/rmaia/graphql-users/internal/model"
	"github.com/rmaia/graphql-users/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user and fills in the database-assigned ID.
//
// UNIQUENESS LIVES HERE:
// The users table has UNIQUE(email). The service layer also looks up the
// email before calling Create (to give the friendly conflict answer on the
// common path), but that check-then-insert is not atomic — two concurrent
// registrations with the same email can both pass the check. The constraint
// is what actually closes that race, and we translate its violation into
// the same Conflict error the pre-check produces.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("email already exists")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID.
// Returns the application's NotFound error if no such user exists.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by exact email match.
// Returns the application's NotFound error if no such user exists.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}

// List returns a window of users ordered by name ascending, plus the total
// user count.
//
// The id tiebreak keeps the order stable when two users share a name —
// otherwise the same request could return overlapping pages.
//
// The count runs as a second query rather than a window function: SQLite
// snapshots give both statements a consistent view within a connection, and
// keeping the queries simple beats shaving one round trip on an embedded DB.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.User, int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, password_hash FROM users
		 ORDER BY name ASC, id ASC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, opts.Limit)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting users: %w", err)
	}

	return users, total, nil
}

// Delete removes a user by ID. Deleting a user that doesn't exist returns
// the application's NotFound error.
func (db *DB) Delete(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user not found")
	}

	return nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE-constraint
// failure. The modernc driver doesn't export a stable typed error for this,
// so we match the constraint message it always emits.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
