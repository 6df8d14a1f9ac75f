// Package store persists the application's state as key-scoped JSON files
// under a data directory, mirroring the original key-value storage
// contract: one slot per fixed key, read-through on boot, write-through on
// mutation. Loads fail soft (a corrupt slot is cleared and the default
// returned); saves are atomic but best-effort, per the optimistic
// persistence policy.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/interfaces"
	"github.com/prescrito/prescrito-api/logging"
)

// Compile-time check to ensure Store implements PersistenceStore
var _ interfaces.PersistenceStore = (*Store)(nil)

// Fixed storage keys. Each key maps to <dataDir>/<key>.json.
const (
	KeyProfile        = "profileData"
	KeyPrescriptions  = "savedPrescriptions"
	KeyFolders        = "folders"
	KeyHasSeenLanding = "hasSeenLanding"
)

// Store is a file-backed key-value store holding JSON-serialized snapshots.
// It never hands out live references: every load unmarshals a fresh value.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open creates the data directory if needed and returns a Store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// load reads a slot into v. A missing slot returns false with no error.
// A corrupt slot is removed and also returns false: persistence errors on
// read never propagate to the caller.
func (s *Store) load(key string, v any) bool {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Failed to read storage slot", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logging.Warn("Corrupt storage slot, resetting to default", "key", key, "error", err)
		if rmErr := os.Remove(s.path(key)); rmErr != nil {
			logging.Error("Failed to clear corrupt storage slot", "key", key, "error", rmErr)
		}
		return false
	}
	return true
}

// save writes a slot atomically: marshal, write to a temp file in the same
// directory, then rename over the final path.
func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &domain.PersistenceError{Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return &domain.PersistenceError{Key: key, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.PersistenceError{Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Key: key, Err: err}
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return &domain.PersistenceError{Key: key, Err: err}
	}
	return nil
}

// LoadProfile returns the stored profile, or nil when none has been saved.
func (s *Store) LoadProfile() (*domain.ProfileData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile domain.ProfileData
	if !s.load(KeyProfile, &profile) {
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile persists the profile under its fixed key.
func (s *Store) SaveProfile(profile domain.ProfileData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeyProfile, profile)
}

// LoadPrescriptions returns the persisted prescriptions list, defaulting
// to an empty list.
func (s *Store) LoadPrescriptions() ([]domain.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prescriptions := []domain.Prescription{}
	s.load(KeyPrescriptions, &prescriptions)
	return prescriptions, nil
}

// SavePrescriptions rewrites the full prescriptions list.
func (s *Store) SavePrescriptions(prescriptions []domain.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeyPrescriptions, prescriptions)
}

// LoadFolders returns the persisted folders list, defaulting to an empty
// list.
func (s *Store) LoadFolders() ([]domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := []domain.Folder{}
	s.load(KeyFolders, &folders)
	return folders, nil
}

// SaveFolders rewrites the full folders list.
func (s *Store) SaveFolders(folders []domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeyFolders, folders)
}

// HasSeenLanding reports whether the one-time onboarding flag is set.
func (s *Store) HasSeenLanding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seen bool
	s.load(KeyHasSeenLanding, &seen)
	return seen
}

// MarkLandingSeen sets the one-time onboarding flag.
func (s *Store) MarkLandingSeen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeyHasSeenLanding, true)
}
