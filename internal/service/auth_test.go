package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/internal/store/drivers/filestore"
	"github.com/viewinvoices/server/pkg/jwtx"
)

func newAuthService(t *testing.T, ttl time.Duration) *service.AuthService {
	t.Helper()

	st, err := filestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	secret := []byte("test-secret-test-secret-test-sec")
	signer, err := jwtx.NewSignerHMAC("HS256", secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHMAC("HS256", secret)
	require.NoError(t, err)

	return &service.AuthService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		TokenTTL: ttl,
	}
}

func TestRegisterLoginAuthenticateRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	created, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.Username)
	require.Equal(t, "a@x.com", created.Email)
	require.False(t, created.IsAdmin)

	token, err := auth.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	current, err := auth.AuthenticateToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, created.ID, current.ID)
	require.Equal(t, "alice", current.Username)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too short", "al", "a@x.com", "password123"},
		{"username too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "a@x.com", "password123"},
		{"bad email", "alice", "not-an-email", "password123"},
		{"email with display name", "alice", "Alice <a@x.com>", "password123"},
		{"short password", "alice", "a@x.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.username, tc.email, tc.password)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	_, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	t.Run("same username", func(t *testing.T) {
		_, err := auth.Register(ctx, "alice", "b@y.com", "password456")
		require.ErrorIs(t, err, service.ErrAlreadyExists)
	})

	t.Run("same email", func(t *testing.T) {
		_, err := auth.Register(ctx, "bob", "a@x.com", "password456")
		require.ErrorIs(t, err, service.ErrAlreadyExists)
	})

	t.Run("original credentials still work", func(t *testing.T) {
		_, err := auth.Login(ctx, "alice", "password123")
		require.NoError(t, err)
	})
}

func TestLoginFailsUniformly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	_, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	_, wrongPassword := auth.Login(ctx, "alice", "password124")
	_, noSuchUser := auth.Login(ctx, "mallory", "password123")

	// Identical error value for both causes, so responses can't be used to
	// probe which usernames exist.
	require.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	require.ErrorIs(t, noSuchUser, service.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), noSuchUser.Error())
}

func TestAuthenticateTokenRejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	_, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.AuthenticateToken(ctx, "not-a-token")
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		expiring := newAuthService(t, time.Hour)
		expiring.TokenTTL = -time.Minute
		expiring.Store = auth.Store
		expiring.Signer = auth.Signer
		expiring.Verifier = auth.Verifier

		token, err := expiring.Login(ctx, "alice", "password123")
		require.NoError(t, err)

		_, err = expiring.AuthenticateToken(ctx, token)
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("zero ttl token", func(t *testing.T) {
		// The configured TTL is used verbatim, so a zero TTL issues a
		// token that is already expired by verification time.
		expiring := newAuthService(t, 0)
		expiring.Store = auth.Store
		expiring.Signer = auth.Signer
		expiring.Verifier = auth.Verifier

		token, err := expiring.Login(ctx, "alice", "password123")
		require.NoError(t, err)

		_, err = expiring.AuthenticateToken(ctx, token)
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		created, err := auth.Register(ctx, "bob", "b@x.com", "password123")
		require.NoError(t, err)

		token, err := auth.Login(ctx, "bob", "password123")
		require.NoError(t, err)

		removed, err := auth.Store.Delete(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, removed)

		_, err = auth.AuthenticateToken(ctx, token)
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	created, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)
	require.ErrorIs(t, auth.RequireAdmin(created), service.ErrForbidden)

	admin := created
	admin.IsAdmin = true
	require.NoError(t, auth.RequireAdmin(admin))
}

// The redacted view must never grow a password hash field, whatever the
// record looked like.
func TestPublicUserHasNoPasswordHash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth := newAuthService(t, time.Hour)

	created, err := auth.Register(ctx, "alice", "a@x.com", "password123")
	require.NoError(t, err)

	data, err := json.Marshal(created)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	require.NotContains(t, fields, "password_hash")
	require.NotContains(t, fields, "passwordHash")
	require.ElementsMatch(t,
		[]string{"id", "username", "email", "is_admin"},
		keysOf(fields),
	)
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
