package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viewinvoices/server/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHMAC("HS256", testSecret)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", got.Subject)
	require.NotNil(t, got.ExpiresAt)
}

func TestVerifyRejections(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHMAC("HS256", testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHMAC("HS256", testSecret)
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		_, err := verifier.Verify("definitely.not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHMAC("HS256", []byte("another-secret-entirely-32-bytes"))
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewAccessClaims("sub", time.Hour, time.Now().UTC()))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("sub", -time.Minute, time.Now().UTC()))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("zero ttl token", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("sub", 0, time.Now().UTC().Add(-time.Second)))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		hs512, err := jwtx.NewSignerHMAC("HS512", testSecret)
		require.NoError(t, err)
		token, err := hs512.Sign(jwtx.NewAccessClaims("sub", time.Hour, time.Now().UTC()))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.Error(t, err)
	})
}

func TestConstructorValidation(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHMAC("RS256", testSecret)
	require.Error(t, err)

	_, err = jwtx.NewSignerHMAC("HS256", nil)
	require.Error(t, err)

	_, err = jwtx.NewVerifierHMAC("none", testSecret)
	require.Error(t, err)

	_, err = jwtx.NewVerifierHMAC("HS384", []byte{})
	require.Error(t, err)
}
