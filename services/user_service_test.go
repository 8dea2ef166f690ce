package services

import (
	"buysell_server/lib"
	"buysell_server/structs/tables"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("same email twice registers once", func(t *testing.T) {
		repo := &mockUserRepo{}
		tx := &fakeTx{}
		svc := NewUserService(testLogger(), repo, tx, stubHasher{}, nil)

		var saved *tables.User
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.AnythingOfType("*tables.User")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*tables.User)
				saved.ID = 11
			}).
			Return(nil).Once()

		ok, err := svc.CreateUser(ctx, &tables.User{Email: "Jane@Example.com ", Name: "Jane"}, "s3cret-pass")
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, saved)
		assert.Equal(t, "jane@example.com", saved.Email)
		assert.True(t, saved.Active)
		assert.Equal(t, []string{tables.RoleUser}, saved.Roles)
		assert.Equal(t, "hashed:s3cret-pass", saved.PasswordHash)

		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(saved, nil).Once()

		second := &tables.User{Email: "jane@example.com", Name: "Impostor"}
		ok, err = svc.CreateUser(ctx, second, "other-pass")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, second.PasswordHash, "rejected user is left untouched")
		assert.False(t, second.Active)

		repo.AssertNumberOfCalls(t, "Save", 1)
		assert.Equal(t, 2, tx.calls)
	})

	t.Run("existing role is not duplicated", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, nil)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		user := &tables.User{Email: "admin@example.com", Roles: []string{tables.RoleAdmin, tables.RoleUser}}
		ok, err := svc.CreateUser(ctx, user, "password1")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{tables.RoleAdmin, tables.RoleUser}, user.Roles)
	})

	t.Run("unique violation race reports failure", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, nil)
		repo.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(lib.ErrConflict).Once()

		ok, err := svc.CreateUser(ctx, &tables.User{Email: "race@example.com"}, "password1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, nil)
		boom := errors.New("db down")
		repo.On("FindByEmail", mock.Anything, "x@example.com").Return(nil, boom).Once()

		ok, err := svc.CreateUser(ctx, &tables.User{Email: "x@example.com"}, "password1")

		assert.ErrorIs(t, err, boom)
		assert.False(t, ok)
	})

	t.Run("welcome mail is sent after registration", func(t *testing.T) {
		repo := &mockUserRepo{}
		mailer := &mockMailer{}
		svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, mailer)
		repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		mailer.On("SendWelcomeEmail", mock.Anything, mock.AnythingOfType("*tables.User")).Return(errors.New("smtp down")).Once()

		ok, err := svc.CreateUser(ctx, &tables.User{Email: "new@example.com"}, "password1")

		require.NoError(t, err, "mail failures do not fail registration")
		assert.True(t, ok)
		mailer.AssertExpectations(t)
	})
}

func TestUserService_GetUserByPrincipal(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, nil)

	jane := &tables.User{ID: 3, Email: "jane@example.com", Active: true}
	inactive := &tables.User{ID: 4, Email: "old@example.com", Active: false}
	repo.On("FindByEmail", ctx, "jane@example.com").Return(jane, nil)
	repo.On("FindByEmail", ctx, "old@example.com").Return(inactive, nil)
	repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, nil)

	user, err := svc.GetUserByPrincipal(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, jane, user)

	for _, principal := range []string{"", "   ", "ghost@example.com", "old@example.com"} {
		_, err := svc.GetUserByPrincipal(ctx, principal)
		assert.ErrorIs(t, err, lib.ErrUnauthorized, principal)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	svc := NewUserService(testLogger(), repo, &fakeTx{}, stubHasher{}, nil)

	jane := &tables.User{ID: 3, Email: "jane@example.com", Active: true, PasswordHash: "hashed:right"}
	repo.On("FindByEmail", ctx, "jane@example.com").Return(jane, nil)
	repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, nil)

	user, err := svc.Authenticate(ctx, "jane@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	_, err = svc.Authenticate(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "right")
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestArgon2Hasher(t *testing.T) {
	hasher := NewArgon2Hasher(&testArgonParams)

	hash, err := hasher.Encode("password1")
	require.NoError(t, err)

	ok, err := hasher.Matches("password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Matches("password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
