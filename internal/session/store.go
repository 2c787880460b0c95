package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the single opaque bearer token between runs. Nothing
// else is persisted client-side.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	// Save stores the token.
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// FileStore keeps the token in a 0600 file under the user config directory.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at the default location,
// <user config dir>/foodtrack/token.
func NewFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, "foodtrack", "token")}, nil
}

// NewFileStoreAt returns a FileStore at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// MemoryStore is a TokenStore backed by a plain string. Use in tests.
type MemoryStore struct {
	token string
}

func NewMemoryStore(token string) *MemoryStore { return &MemoryStore{token: token} }

func (s *MemoryStore) Load() (string, error)   { return s.token, nil }
func (s *MemoryStore) Save(token string) error { s.token = token; return nil }
func (s *MemoryStore) Clear() error            { s.token = ""; return nil }
