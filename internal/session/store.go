package session

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// Credentials is the persisted session state: the issued token plus the
// user it belongs to.
type Credentials struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store persists session credentials between runs. Implementations must
// tolerate Clear on an already-empty store.
type Store interface {
	// Load returns the stored credentials, or ok=false when none exist.
	Load() (Credentials, bool, error)
	Save(creds Credentials) error
	Clear() error
}

// FileStore keeps credentials in a JSON file, the CLI equivalent of the
// browser's local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Credentials, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, err
	}
	if creds.Token == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

func (s *FileStore) Save(creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store, mainly for tests.
type MemoryStore struct {
	creds Credentials
	ok    bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Credentials, bool, error) {
	return s.creds, s.ok, nil
}

func (s *MemoryStore) Save(creds Credentials) error {
	s.creds = creds
	s.ok = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.creds = Credentials{}
	s.ok = false
	return nil
}
