package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmaia/graphql-users/internal/apperror"
	"github.com/rmaia/graphql-users/internal/auth"
	"github.com/rmaia/graphql-users/internal/model"
	"github.com/rmaia/graphql-users/internal/repository"
)

// =========================================================================
// FAKE REPOSITORY
// =========================================================================
//
// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A hand-written fake (not a mock framework) keeps these tests dependency-
// free and easy to read — you can see exactly what the fake does. It
// reproduces the two behaviours the service depends on: the NotFound /
// Conflict error mapping and List's name-ordered window plus total count.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	// set to a non-nil error to simulate a database failure
	listErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Conflict("email already exists")
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	result := *u
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (f *fakeUserRepo) List(_ context.Context, opts repository.ListOptions) ([]model.User, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	all := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	if opts.Offset >= total {
		return []model.User{}, total, nil
	}
	end := opts.Offset + opts.Limit
	if end > total {
		end = total
	}
	return all[opts.Offset:end], total, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user not found")
	}
	delete(f.users, id)
	return nil
}

// newTestService returns a UserService wired with the fake repository, a
// minimum-cost PasswordService, and a short-TTL TokenService.
func newTestService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	passwords := auth.NewPasswordService(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewUserService(repo, tokens, passwords, logger)
}

func int32p(v int32) *int32 { return &v }

// =========================================================================
// CreateUser TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "daniel",
		Email:    "daniel@email.com",
		Password: "123456a",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID, "repository should assign the ID")
	assert.Equal(t, "daniel", user.Name)
	assert.Equal(t, "daniel@email.com", user.Email)
	assert.NotEqual(t, "123456a", user.PasswordHash, "plaintext must never be stored")
	assert.NotEmpty(t, user.PasswordHash)
}

func TestCreateUser_PasswordWithoutLetterIsBadRequest(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "daniel",
		Email:    "daniel@email.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.EqualError(t, err, "wrong password format")
}

func TestCreateUser_EmailWithoutAtSignIsBadRequest(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "daniel",
		Email:    "daniel.email.cm",
		Password: "123456a",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.EqualError(t, err, "wrong email format")
}

func TestCreateUser_SecondIdenticalCallIsConflict(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())
	in := CreateUserInput{Name: "daniel", Email: "daniel@email.com", Password: "123456a"}

	_, err := svc.CreateUser(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), in)
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "email already exists")
}

// =========================================================================
// Login TESTS
// =========================================================================

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "daniel", Email: "daniel@email.com", Password: "123456a",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{
		Email: "daniel@email.com", Password: "123456a",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_TokenCarriesUserIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "daniel", Email: "daniel@email.com", Password: "123456a",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{
		Email: "daniel@email.com", Password: "123456a", RememberMe: true,
	})
	require.NoError(t, err)

	// Validate the issued token with an identically-configured TokenService.
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := tokens.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.True(t, claims.RememberMe)
}

// The next two tests pin the enumeration-resistance property: a wrong
// password and an unknown email must be indistinguishable from outside.

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "daniel", Email: "daniel@email.com", Password: "123456a",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email: "daniel@email.com", Password: "wrong1password",
	})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
	assert.EqualError(t, err, "e-mail or password not correct")
}

func TestLogin_UnknownEmailIsSameUnauthorized(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{
		Email: "nobody@email.com", Password: "123456a",
	})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
	assert.EqualError(t, err, "e-mail or password not correct")
}

func TestLogin_MalformedInputIsBadRequestNotUnauthorized(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{Email: "daniel@email.com", Password: "short"})
	assert.EqualError(t, err, "wrong password format")

	_, err = svc.Login(context.Background(), LoginInput{Email: "daniel.email.cm", Password: "123456a"})
	assert.EqualError(t, err, "wrong email format")
}

// =========================================================================
// GetUser TESTS
// =========================================================================

func TestGetUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "daniel", Email: "daniel@email.com", Password: "123456a",
	})
	require.NoError(t, err)

	got, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "daniel", got.Name)
}

func TestGetUser_MissingIsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.GetUser(context.Background(), 999)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "user not found")
}

// =========================================================================
// ListUsers TESTS
// =========================================================================

// seedUsers fills the fake repo with n users whose names sort in creation
// order (two-digit suffix, so "user-10" doesn't sort before "user-02").
func seedUsers(t *testing.T, repo *fakeUserRepo, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := repo.Create(context.Background(), &model.User{
			Name:         fmt.Sprintf("user-%02d", i),
			Email:        fmt.Sprintf("user%d@email.com", i),
			PasswordHash: "irrelevant",
		})
		require.NoError(t, err)
	}
}

// The 23-users/limit-5 grid: 4 full pages, a 3-item partial fifth page that
// floor(23/5)=4 excludes from totalPage, and an empty sixth page.
func TestListUsers_PaginationGrid(t *testing.T) {
	repo := newFakeUserRepo()
	seedUsers(t, repo, 23)
	svc := newTestService(t, repo)

	tests := []struct {
		name      string
		page      int32
		wantItems int
		wantPrev  bool
		wantNext  bool
	}{
		{"first page is full", 1, 5, false, true},
		{"middle page has both neighbours", 3, 5, true, true},
		{"last counted page", 4, 5, true, false},
		{"partial remainder page", 5, 3, true, false},
		{"beyond the end is empty, not an error", 6, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ListUsers(context.Background(), ListInput{
				Page:  int32p(tt.page),
				Limit: int32p(5),
			})
			require.NoError(t, err)

			assert.Len(t, result.Users, tt.wantItems)
			assert.Equal(t, int(tt.page), result.Page)
			assert.Equal(t, 4, result.TotalPage, "totalPage = floor(23/5)")
			assert.Equal(t, tt.wantPrev, result.HasPreviousPage)
			assert.Equal(t, tt.wantNext, result.HasNextPage)
		})
	}
}

func TestListUsers_DefaultsToFirstPageOfTen(t *testing.T) {
	repo := newFakeUserRepo()
	seedUsers(t, repo, 23)
	svc := newTestService(t, repo)

	result, err := svc.ListUsers(context.Background(), ListInput{})
	require.NoError(t, err)

	assert.Len(t, result.Users, 10)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.TotalPage, "totalPage = floor(23/10)")
	assert.False(t, result.HasPreviousPage)
	assert.True(t, result.HasNextPage)
}

func TestListUsers_OrderedByName(t *testing.T) {
	repo := newFakeUserRepo()
	seedUsers(t, repo, 12)
	svc := newTestService(t, repo)

	result, err := svc.ListUsers(context.Background(), ListInput{
		Page: int32p(2), Limit: int32p(5),
	})
	require.NoError(t, err)

	require.Len(t, result.Users, 5)
	assert.Equal(t, "user-06", result.Users[0].Name, "page 2 starts after the first five names")
	assert.Equal(t, "user-10", result.Users[4].Name)
}

func TestListUsers_RejectsInvalidPage(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	for _, page := range []int32{0, -1} {
		_, err := svc.ListUsers(context.Background(), ListInput{Page: int32p(page)})
		require.ErrorIs(t, err, apperror.ErrBadRequest)
		assert.EqualError(t, err, "page must not be negative")
	}
}

func TestListUsers_RepositoryFailurePropagates(t *testing.T) {
	repo := newFakeUserRepo()
	repo.listErr = fmt.Errorf("disk on fire")
	svc := newTestService(t, repo)

	_, err := svc.ListUsers(context.Background(), ListInput{})
	require.Error(t, err)
	// An infrastructure failure is not part of the 4xx taxonomy.
	assert.NotErrorIs(t, err, apperror.ErrBadRequest)
}

func TestListUsers_RejectsInvalidLimit(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	for _, limit := range []int32{0, -1} {
		_, err := svc.ListUsers(context.Background(), ListInput{Limit: int32p(limit)})
		require.ErrorIs(t, err, apperror.ErrBadRequest)
		assert.EqualError(t, err, "limit must not be negative")
	}
}
