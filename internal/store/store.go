package store

import (
	"context"
	"errors"

	"github.com/viewinvoices/server/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Users is the data access interface for user records. The concrete driver
// (filestore) implements this; services only know the interface so tests can
// substitute their own.
type Users interface {
	// Create inserts a new user (id is provided by the caller via ULID).
	// Returns ErrAlreadyExists when the username or email is already held
	// by a readable record.
	Create(ctx context.Context, u domain.User) error

	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByUsername is used during login. Linear scan over all records;
	// fine at this scale, revisit with an index if the user count grows.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByEmail is used for the duplicate check at registration.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// ListAll returns every readable record in no particular order.
	// Unreadable files are logged and skipped, never fatal.
	ListAll(ctx context.Context) ([]domain.User, error)

	// Update merges the patch into an existing record and persists it.
	// Returns the updated record, or ErrNotFound.
	Update(ctx context.Context, id string, patch UserPatch) (domain.User, error)

	// Delete removes a record. Returns false when no record existed;
	// repeated deletes of an absent id are not errors.
	Delete(ctx context.Context, id string) (bool, error)

	// Close releases any underlying resources.
	Close() error
}

// UserPatch enumerates exactly the mutable fields of a user record. Nil
// fields keep their current values. Password re-hashing happens in the
// service layer; the store only ever sees hashes.
type UserPatch struct {
	Username     *string
	Email        *string
	IsAdmin      *bool
	PasswordHash *string
}

// IsZero reports whether the patch would change nothing.
func (p UserPatch) IsZero() bool {
	return p.Username == nil && p.Email == nil && p.IsAdmin == nil && p.PasswordHash == nil
}
