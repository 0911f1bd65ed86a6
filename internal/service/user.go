// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Resolver (GraphQL layer)  → parses operations, shapes responses
//	Service (Business layer)  → validates, enforces rules, orchestrates
//	Repository (Data layer)   → reads/writes the database
//
// The resolvers only know about GraphQL; this package only knows about
// business rules; the repository only knows about SQL. Each operation below
// is a straight-line pipeline — authenticate (done by the resolver), then
// validate input, then consult/mutate the user directory, then shape the
// result — with every failure reported as a typed apperror value, never a
// panic or a swallowed error.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rmaia/graphql-users/internal/apperror"
	"github.com/rmaia/graphql-users/internal/auth"
	"github.com/rmaia/graphql-users/internal/model"
	"github.com/rmaia/graphql-users/internal/repository"
	"github.com/rmaia/graphql-users/internal/validate"
)

// Listing defaults. A request that names neither page nor limit gets the
// first page of ten.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// UserService implements the four API operations over injected
// collaborators.
//
// DEPENDENCIES (injected via NewUserService):
//   - users      repository.UserRepository → the user directory
//   - tokens     *auth.TokenService        → issue login tokens
//   - passwords  *auth.PasswordService     → bcrypt hashing/comparison
//   - logger     *slog.Logger              → structured logging
//
// The repository is an interface, so tests swap in an in-memory fake.
type UserService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewUserService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// CreateUserInput is the createUser mutation's argument set.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the login mutation's argument set. RememberMe selects the
// longer token expiry window.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginResult bundles the authenticated user with the issued token so the
// resolver can shape the response in one step.
type LoginResult struct {
	User  *model.User
	Token string
}

// ListInput is the users query's argument set. Nil means "not provided":
// an absent page defaults to 1 and an absent limit to 10, while an explicit
// zero or negative value is rejected. The pointer types keep those two
// situations distinguishable.
type ListInput struct {
	Page  *int32
	Limit *int32
}

// Page is one window of the user listing plus the derived page metadata.
//
// TotalPage is floor(total/limit) — a trailing partial page does not count.
// That means HasNextPage is false while standing on the partial page, and
// requesting pages past it yields an empty list rather than an error.
// Long-standing API behaviour; see users-query tests before changing it.
type Page struct {
	Users           []model.User
	Page            int
	TotalPage       int
	HasPreviousPage bool
	HasNextPage     bool
}

// CreateUser registers a new user.
//
// Pipeline: validate password format → validate email format → reject a
// taken email → hash the password → persist. The returned user carries the
// database-assigned ID and never the hash (the model hides it from JSON and
// the GraphQL schema has no field for it).
//
// The email pre-check gives the friendly Conflict answer on the common
// path; the repository's unique constraint produces the same Conflict if
// two concurrent registrations race past the check.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if !validate.Password(in.Password) {
		return nil, apperror.BadRequest("wrong password format")
	}
	if !validate.Email(in.Email) {
		return nil, apperror.BadRequest("wrong email format")
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict("email already exists")
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/user: checking email: %w", err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The repository maps a unique-constraint violation to the same
		// Conflict error the pre-check produces, so it passes through as-is.
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	s.logger.Info("user created", slog.Int64("userID", user.ID))

	return user, nil
}

// Login authenticates a user by email and password and issues a bearer
// token.
//
// ENUMERATION RESISTANCE:
// An unknown email and a wrong password yield the exact same 401 with the
// exact same message. Distinguishing the two would let an attacker probe
// which addresses have accounts. The input formats are still checked first
// (same as createUser) so a malformed request is a 400, not a 401.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if !validate.Password(in.Password) {
		return nil, apperror.BadRequest("wrong password format")
	}
	if !validate.Email(in.Email) {
		return nil, apperror.BadRequest("wrong email format")
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("e-mail or password not correct")
		}
		return nil, fmt.Errorf("service/user: looking up login email: %w", err)
	}

	if !s.passwords.Compare(in.Password, user.PasswordHash) {
		return nil, apperror.Unauthorized("e-mail or password not correct")
	}

	token, err := s.tokens.Generate(user.ID, in.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("service/user: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.Bool("rememberMe", in.RememberMe),
	)

	return &LoginResult{User: user, Token: token}, nil
}

// GetUser returns the user with the given ID, or the 404 "user not found"
// error.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/user: fetching user %d: %w", id, err)
	}
	return user, nil
}

// ListUsers returns one page of the name-ordered user listing.
//
// The arithmetic: offset = limit * (page - 1), totalPage = floor(total /
// limit), hasPreviousPage = page > 1, hasNextPage = page < totalPage.
// A page beyond the last returns an empty Users slice with hasNextPage
// false — not an error.
func (s *UserService) ListUsers(ctx context.Context, in ListInput) (*Page, error) {
	page := DefaultPage
	if in.Page != nil {
		page = int(*in.Page)
	}
	limit := DefaultLimit
	if in.Limit != nil {
		limit = int(*in.Limit)
	}

	if page < 1 {
		return nil, apperror.BadRequest("page must not be negative")
	}
	if limit < 1 {
		return nil, apperror.BadRequest("limit must not be negative")
	}

	offset := limit * (page - 1)

	users, total, err := s.users.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}

	totalPage := total / limit // integer division — floor on purpose

	return &Page{
		Users:           users,
		Page:            page,
		TotalPage:       totalPage,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPage,
	}, nil
}

