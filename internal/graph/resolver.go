// Package graph maps GraphQL operations onto the service layer.
//
// Resolver methods stay thin: authenticate where required, delegate to the
// service, reshape the result for the schema. Business rules live in
// internal/service.
//
// Auth is per-operation, not per-request. The bearer token rides in the
// request context (put there by auth.BearerToken); user and users verify it,
// hello, createUser and login don't. One endpoint serves both public and
// protected operations.
package graph

import (
	"context"
	"strconv"

	"github.com/graph-gophers/graphql-go"

	"github.com/rmaia/graphql-users/internal/apperror"
	"github.com/rmaia/graphql-users/internal/auth"
	"github.com/rmaia/graphql-users/internal/model"
	"github.com/rmaia/graphql-users/internal/service"
)

// Resolver is the root resolver: every Query and Mutation field is a method
// on it.
type Resolver struct {
	users  *service.UserService
	tokens *auth.TokenService
}

// NewResolver creates the root resolver.
func NewResolver(users *service.UserService, tokens *auth.TokenService) *Resolver {
	return &Resolver{users: users, tokens: tokens}
}

// ParseSchema parses the schema against the resolver. Call once at startup;
// it fails fast if schema and resolver have drifted apart.
func ParseSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r, graphql.UseFieldResolvers())
}

// ---- Output types -------------------------------------------------------
//
// With graphql.UseFieldResolvers, exported struct fields resolve schema
// fields directly (matched case-insensitively), so these are plain structs.

// HelloPayload is the static hello-world query response.
type HelloPayload struct {
	PtBr string
	En   string
}

// UserPayload is the public view of a user. The password hash never leaves
// the model layer.
type UserPayload struct {
	ID    graphql.ID
	Name  string
	Email string
}

// LoginPayload pairs the authenticated user with their bearer token.
type LoginPayload struct {
	User  UserPayload
	Token string
}

// LoginAuthPayload is the extra nesting level the login mutation returns
// ({login: {user, token}}), kept for wire compatibility with existing
// clients.
type LoginAuthPayload struct {
	Login LoginPayload
}

// UsersPagePayload is one page of the user listing plus its page metadata.
type UsersPagePayload struct {
	Users           []UserPayload
	Page            int32
	TotalPage       int32
	HasPreviousPage bool
	HasNextPage     bool
}

func toUserPayload(u *model.User) UserPayload {
	return UserPayload{
		ID:    graphql.ID(strconv.FormatInt(u.ID, 10)),
		Name:  u.Name,
		Email: u.Email,
	}
}

// ---- Input types --------------------------------------------------------

type createUserInput struct {
	Name     string
	Email    string
	Password string
}

type loginInput struct {
	Email      string
	Password   string
	RememberMe *bool
}

type userQueryInput struct {
	ID graphql.ID
}

type usersQueryInput struct {
	Limit *int32
	Page  *int32
}

// requireAuth validates the bearer token riding in the request context.
// A missing token reports "Token not found", anything else invalid reports
// "Invalid token", both as 401s.
func (r *Resolver) requireAuth(ctx context.Context) (auth.Claims, error) {
	return r.tokens.Validate(auth.TokenFromContext(ctx))
}

// ---- Query --------------------------------------------------------------

// Hello is the API's hello-world: a static payload, no auth, no storage.
// Handy as a smoke test that the GraphQL endpoint is up.
func (r *Resolver) Hello() HelloPayload {
	return HelloPayload{PtBr: "olar", En: "Hello, World"}
}

// User resolves user(data: {id}) — auth required.
func (r *Resolver) User(ctx context.Context, args struct{ Data userQueryInput }) (UserPayload, error) {
	if _, err := r.requireAuth(ctx); err != nil {
		return UserPayload{}, err
	}

	// An ID that isn't a number can't name any user, so it gets the same
	// answer as a number that names none.
	id, err := strconv.ParseInt(string(args.Data.ID), 10, 64)
	if err != nil {
		return UserPayload{}, apperror.NotFound("user not found")
	}

	user, err := r.users.GetUser(ctx, id)
	if err != nil {
		return UserPayload{}, err
	}

	return toUserPayload(user), nil
}

// Users resolves users(data: {limit, page}) — auth required.
func (r *Resolver) Users(ctx context.Context, args struct{ Data usersQueryInput }) (UsersPagePayload, error) {
	if _, err := r.requireAuth(ctx); err != nil {
		return UsersPagePayload{}, err
	}

	page, err := r.users.ListUsers(ctx, service.ListInput{
		Page:  args.Data.Page,
		Limit: args.Data.Limit,
	})
	if err != nil {
		return UsersPagePayload{}, err
	}

	users := make([]UserPayload, len(page.Users))
	for i := range page.Users {
		users[i] = toUserPayload(&page.Users[i])
	}

	return UsersPagePayload{
		Users:           users,
		Page:            int32(page.Page),
		TotalPage:       int32(page.TotalPage),
		HasPreviousPage: page.HasPreviousPage,
		HasNextPage:     page.HasNextPage,
	}, nil
}

// ---- Mutation -----------------------------------------------------------

// CreateUser resolves createUser(data: {name, email, password}).
// Public: registration has to work before anyone has a token.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Data createUserInput }) (UserPayload, error) {
	user, err := r.users.CreateUser(ctx, service.CreateUserInput{
		Name:     args.Data.Name,
		Email:    args.Data.Email,
		Password: args.Data.Password,
	})
	if err != nil {
		return UserPayload{}, err
	}

	return toUserPayload(user), nil
}

// Login resolves login(data: {email, password, rememberMe}).
func (r *Resolver) Login(ctx context.Context, args struct{ Data loginInput }) (LoginAuthPayload, error) {
	rememberMe := false
	if args.Data.RememberMe != nil {
		rememberMe = *args.Data.RememberMe
	}

	result, err := r.users.Login(ctx, service.LoginInput{
		Email:      args.Data.Email,
		Password:   args.Data.Password,
		RememberMe: rememberMe,
	})
	if err != nil {
		return LoginAuthPayload{}, err
	}

	return LoginAuthPayload{
		Login: LoginPayload{
			User:  toUserPayload(result.User),
			Token: result.Token,
		},
	}, nil
}
