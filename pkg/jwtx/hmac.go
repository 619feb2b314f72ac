package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// hmacMethods are the signing algorithms this service is willing to use.
var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// HMACSigner implements Signer using a shared-secret HMAC scheme.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

// NewSignerHMAC creates an HMAC signer for alg (HS256, HS384 or HS512).
// An empty secret is refused outright; running unauthenticated is worse
// than not running.
func NewSignerHMAC(alg string, secret []byte) (*HMACSigner, error) {
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &HMACSigner{method: method, secret: secret}, nil
}

func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	return t.SignedString(s.secret)
}

// HMACVerifier validates JWTs signed with the shared secret.
type HMACVerifier struct {
	alg    string
	secret []byte
}

// NewVerifierHMAC creates a verifier accepting only tokens signed with alg
// under the given secret.
func NewVerifierHMAC(alg string, secret []byte) (*HMACVerifier, error) {
	if _, ok := hmacMethods[alg]; !ok {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &HMACVerifier{alg: alg, secret: secret}, nil
}

// Verify validates the JWT string and returns its parsed Claims. Malformed
// tokens, wrong algorithms, bad signatures and expired tokens all come back
// as errors; callers that must not leak the failure mode should collapse the
// error into a single rejection and log the detail instead.
func (v *HMACVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{v.alg}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrAlgMismatch
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
