package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/viewinvoices/server/internal/domain"
	"github.com/viewinvoices/server/internal/store"
	"github.com/viewinvoices/server/pkg/cryptox"
	"github.com/viewinvoices/server/pkg/slogx"
)

// UserService exposes the admin-facing user management operations. Every
// user it returns is already redacted.
type UserService struct {
	Store store.Users
}

// UserUpdate enumerates the fields an admin may change. Nil fields are left
// alone. Password, when set, is re-hashed here before it reaches the store.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
	Password *string `json:"password"`
}

// List returns all users, redacted, in no particular order.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// Get fetches one user by id, redacted.
func (s *UserService) Get(ctx context.Context, id string) (domain.PublicUser, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrNotFound
		}
		return domain.PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return u.Public(), nil
}

// Update applies the typed patch to an existing record. Provided fields are
// re-validated with the same rules as registration.
func (s *UserService) Update(ctx context.Context, id string, upd UserUpdate) (domain.PublicUser, error) {
	patch := store.UserPatch{
		Username: upd.Username,
		Email:    upd.Email,
		IsAdmin:  upd.IsAdmin,
	}

	if upd.Username != nil {
		if err := validateUsername(*upd.Username); err != nil {
			return domain.PublicUser{}, err
		}
	}
	if upd.Email != nil {
		if err := validateEmail(*upd.Email); err != nil {
			return domain.PublicUser{}, err
		}
	}
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return domain.PublicUser{}, err
		}
		hash, err := cryptox.HashPassword(*upd.Password)
		if err != nil {
			return domain.PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.IsZero() {
		return domain.PublicUser{}, validationErrorf("no updatable fields provided")
	}

	u, err := s.Store.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.PublicUser{}, ErrNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.PublicUser{}, ErrAlreadyExists
		default:
			return domain.PublicUser{}, fmt.Errorf("update user: %w", err)
		}
	}

	slogx.FromContext(ctx).Info("user updated", "user_id", id)
	return u.Public(), nil
}

// Delete removes a user record. Deletion is immediate and irreversible;
// outstanding tokens for the user die at their next authentication check.
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.Store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !removed {
		return ErrNotFound
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}
