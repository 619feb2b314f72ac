package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viewinvoices/server/internal/domain"
	"github.com/viewinvoices/server/internal/store"
	"github.com/viewinvoices/server/pkg/cryptox"
	"github.com/viewinvoices/server/pkg/idx"
	"github.com/viewinvoices/server/pkg/jwtx"
	"github.com/viewinvoices/server/pkg/slogx"
)

// AuthService orchestrates registration, login and token authentication
// over the user store, the password hasher and the token signer.
type AuthService struct {
	Store    store.Users
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	// TokenTTL is used as-is; defaulting lives in config, and a zero or
	// negative value issues already-expired tokens.
	TokenTTL time.Duration
}

// Register validates the input shape, hashes the password and creates the
// record. Duplicate username and duplicate email collapse into the same
// error so the response can't reveal which field collided.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.PublicUser, error) {
	if err := validateUsername(username); err != nil {
		return domain.PublicUser{}, err
	}
	if err := validateEmail(email); err != nil {
		return domain.PublicUser{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.PublicUser{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}

	if err := s.Store.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrAlreadyExists
		}
		return domain.PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID, "username", u.Username)
	return u.Public(), nil
}

// Login checks the credentials and issues a bearer token whose subject is
// the user id. A missing user and a wrong password return the identical
// error value.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		log.Info("login rejected", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(jwtx.NewAccessClaims(u.ID, s.TokenTTL, time.Now().UTC()))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	log.Info("user logged in", "user_id", u.ID, "username", username)
	return token, nil
}

// AuthenticateToken verifies a bearer token and materializes the current
// user it refers to. Every failure mode, including a user deleted after the
// token was issued, comes back as ErrUnauthenticated; the specific reason
// only goes to the log.
func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		log.Warn("token verification failed", "err", err)
		return domain.PublicUser{}, ErrUnauthenticated
	}

	if claims.Subject == "" {
		log.Warn("token missing subject claim")
		return domain.PublicUser{}, ErrUnauthenticated
	}

	u, err := s.Store.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("token references unknown user", "user_id", claims.Subject)
			return domain.PublicUser{}, ErrUnauthenticated
		}
		return domain.PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}

	return u.Public(), nil
}

// RequireAdmin passes the user through iff it has the admin flag.
func (s *AuthService) RequireAdmin(u domain.PublicUser) error {
	if !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}
