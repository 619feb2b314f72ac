// Package jwtx signs and verifies the bearer tokens the service issues.
// Only symmetric HMAC schemes are supported: this is a single-service
// deployment where issuer and verifier share one process-wide secret, so
// asymmetric keys and JWKS publication would buy nothing. There is no key
// rotation; changing the secret invalidates all outstanding tokens.
package jwtx

import "errors"

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)
