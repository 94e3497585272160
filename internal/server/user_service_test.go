package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/types"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, email, passwordHash, fullName string) (*db.User, error) {
	u := &db.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeUserStore) UpdateUserProfile(ctx context.Context, id uuid.UUID, upd db.UserProfileUpdate) (*db.User, error) {
	u := f.users[id]
	if u == nil {
		return nil, nil
	}
	if upd.Major != nil {
		u.Major = *upd.Major
	}
	if upd.CGPA != nil {
		u.CGPA = upd.CGPA
	}
	if upd.Nationality != nil {
		u.Nationality = *upd.Nationality
	}
	return u, nil
}

func (f *fakeUserStore) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if u := f.users[id]; u != nil {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if u := f.users[id]; u != nil {
		u.LastLogin = time.Now().UTC()
	}
	return nil
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "Ayesha Khan",
		Email:    "ayesha@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayesha@example.com", user.Email)
	assert.Equal(t, "Ayesha Khan", user.FullName)

	logged, err := svc.Login(ctx, &types.LoginRequest{
		Email:    "ayesha@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "A", Email: "a@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.CreateUserRequest{
		FullName: "B", Email: "a@example.com", Password: "password456",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "A", Email: "a@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testPasswordConfig())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.IsType(t, &ErrInvalidCredentials{}, err,
		"unknown email and wrong password must be indistinguishable")
}

func TestUpdatePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "A", Email: "a@example.com", Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "wrong-current", "newpassword123")
	assert.IsType(t, &ErrPasswordMismatch{}, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "password123", "newpassword123"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@example.com", Password: "newpassword123"})
	assert.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		FullName: "A", Email: "a@example.com", Password: "password123",
	})
	require.NoError(t, err)

	major := "Computer Science"
	cgpa := 3.8
	updated, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		Major: &major,
		CGPA:  &cgpa,
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", updated.Major)
	require.NotNil(t, updated.CGPA)
	assert.Equal(t, 3.8, *updated.CGPA)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testPasswordConfig())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), &types.UpdateProfileRequest{})
	assert.IsType(t, &ErrUserNotFound{}, err)
}
