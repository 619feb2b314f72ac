package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/cryptox"
	"github.com/viewinvoices/server/pkg/idx"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestUserServiceListAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)
	users := &service.UserService{Store: auth.Store}

	alice, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "bob", "b@x.com", "password123")
	require.NoError(t, err)

	t.Run("list returns every user redacted", func(t *testing.T) {
		all, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := users.Get(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice, got)
	})

	t.Run("get miss", func(t *testing.T) {
		_, err := users.Get(ctx, idx.New().String())
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)
	users := &service.UserService{Store: auth.Store}

	alice, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	t.Run("promote to admin", func(t *testing.T) {
		got, err := users.Update(ctx, alice.ID, service.UserUpdate{IsAdmin: boolPtr(true)})
		require.NoError(t, err)
		require.True(t, got.IsAdmin)
	})

	t.Run("password change is re-hashed and usable", func(t *testing.T) {
		_, err := users.Update(ctx, alice.ID, service.UserUpdate{Password: strPtr("newpassword1")})
		require.NoError(t, err)

		record, err := auth.Store.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotEqual(t, "newpassword1", record.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("newpassword1", record.PasswordHash))

		_, err = auth.Login(ctx, "alice", "newpassword1")
		require.NoError(t, err)
		_, err = auth.Login(ctx, "alice", "password123")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("provided fields are validated", func(t *testing.T) {
		_, err := users.Update(ctx, alice.ID, service.UserUpdate{Username: strPtr("ab")})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)

		_, err = users.Update(ctx, alice.ID, service.UserUpdate{Email: strPtr("nope")})
		require.ErrorAs(t, err, &verr)

		_, err = users.Update(ctx, alice.ID, service.UserUpdate{Password: strPtr("short")})
		require.ErrorAs(t, err, &verr)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := users.Update(ctx, alice.ID, service.UserUpdate{})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := users.Update(ctx, idx.New().String(), service.UserUpdate{IsAdmin: boolPtr(true)})
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("username collision", func(t *testing.T) {
		_, err := auth.Register(ctx, "bob", "b@x.com", "password123")
		require.NoError(t, err)

		_, err = users.Update(ctx, alice.ID, service.UserUpdate{Username: strPtr("bob")})
		require.ErrorIs(t, err, service.ErrAlreadyExists)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)
	users := &service.UserService{Store: auth.Store}

	alice, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err = users.Get(ctx, alice.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	require.ErrorIs(t, users.Delete(ctx, alice.ID), service.ErrNotFound)
}
