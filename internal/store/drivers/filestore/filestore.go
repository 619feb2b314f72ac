// Package filestore persists one JSON document per user record under a
// single root directory. Writes go to a temp file and are renamed into
// place so a crash mid-write never leaves a half-written record behind.
// All writes are serialized behind a store-wide lock, which also closes the
// check-then-write race on the uniqueness scan in Create.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viewinvoices/server/internal/domain"
	"github.com/viewinvoices/server/internal/store"
	"github.com/viewinvoices/server/pkg/idx"
)

const recordExt = ".json"

// Store implements store.Users on top of a directory of per-record files.
type Store struct {
	root   string
	logger *slog.Logger

	// mu serializes writes and the uniqueness scan in Create/Update.
	// Reads only take the read side.
	mu sync.RWMutex
}

// New opens (and creates if absent) the record directory at root.
func New(root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("filestore: create root %s: %w", root, err)
	}

	return &Store{root: root, logger: logger}, nil
}

func (s *Store) Create(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := idx.Parse(u.ID); err != nil {
		return fmt.Errorf("filestore: create: bad id %q: %w", u.ID, err)
	}

	for _, existing := range s.loadAllLocked() {
		if existing.Username == u.Username || existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}

	return s.writeRecordLocked(u)
}

func (s *Store) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readRecordLocked(id)
}

func (s *Store) GetByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.loadAllLocked() {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (s *Store) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.loadAllLocked() {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (s *Store) ListAll(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadAllLocked(), nil
}

func (s *Store) Update(_ context.Context, id string, patch store.UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.readRecordLocked(id)
	if err != nil {
		return domain.User{}, err
	}

	if patch.Username != nil && *patch.Username != u.Username {
		if s.takenLocked(id, func(o domain.User) bool { return o.Username == *patch.Username }) {
			return domain.User{}, store.ErrAlreadyExists
		}
		u.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if s.takenLocked(id, func(o domain.User) bool { return o.Email == *patch.Email }) {
			return domain.User{}, store.ErrAlreadyExists
		}
		u.Email = *patch.Email
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}

	if err := s.writeRecordLocked(u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(id)
	if err != nil {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("filestore: delete %s: %w", id, err)
	}
	return true, nil
}

func (s *Store) Close() error { return nil }

// takenLocked reports whether any record other than id satisfies match.
func (s *Store) takenLocked(id string, match func(domain.User) bool) bool {
	for _, o := range s.loadAllLocked() {
		if o.ID != id && match(o) {
			return true
		}
	}
	return false
}

// recordPath maps an id to its file, rejecting anything that is not a
// well-formed ULID so ids from tokens or URLs can never escape the root.
func (s *Store) recordPath(id string) (string, error) {
	if _, err := idx.Parse(id); err != nil {
		return "", err
	}
	return filepath.Join(s.root, id+recordExt), nil
}

func (s *Store) readRecordLocked(id string) (domain.User, error) {
	path, err := s.recordPath(id)
	if err != nil {
		return domain.User{}, store.ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("failed to read user record", "id", id, "err", err)
		}
		return domain.User{}, store.ErrNotFound
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.logger.Error("corrupt user record", "id", id, "err", err)
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

// writeRecordLocked persists u atomically: temp file in the same directory,
// then rename over the final path.
func (s *Store) writeRecordLocked(u domain.User) error {
	path, err := s.recordPath(u.ID)
	if err != nil {
		return fmt.Errorf("filestore: write: bad id %q: %w", u.ID, err)
	}

	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", u.ID, err)
	}

	tmp, err := os.CreateTemp(s.root, u.ID+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: write %s: %w", u.ID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", u.ID, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", u.ID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", u.ID, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", u.ID, err)
	}
	return nil
}

// loadAllLocked reads every record file under the root. A file that cannot
// be read or parsed is logged and skipped so one corrupt record cannot take
// down listing or lookups.
func (s *Store) loadAllLocked() []domain.User {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.logger.Error("failed to read user data directory", "root", s.root, "err", err)
		return nil
	}

	var users []domain.User
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			s.logger.Error("failed to read user record", "file", name, "err", err)
			continue
		}

		var u domain.User
		if err := json.Unmarshal(data, &u); err != nil {
			s.logger.Error("corrupt user record", "file", name, "err", err)
			continue
		}
		users = append(users, u)
	}
	return users
}
