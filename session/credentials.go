package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CredentialStore persists the bearer token across restarts.
type CredentialStore interface {
	// Load returns the stored token, or "" when none exists.
	Load() (string, error)
	// Save durably stores the token.
	Save(token string) error
	// Clear erases the stored token. Clearing an empty store is a no-op.
	Clear() error
}

// credentialFile is the on-disk format.
type credentialFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore keeps the credential in a YAML file with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialPath returns the per-user credential location,
// ~/.config/pbctl/credentials.yaml.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "pbctl", "credentials.yaml"), nil
}

// Load implements CredentialStore.
func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}

	var cf credentialFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return "", fmt.Errorf("failed to parse credential file: %w", err)
	}
	return cf.Token, nil
}

// Save implements CredentialStore. The directory is created with owner-only
// permissions and the file written 0600.
func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}

	data, err := yaml.Marshal(credentialFile{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Clear implements CredentialStore.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory CredentialStore for tests.
type MemoryStore struct {
	token string
}

// NewMemoryStore creates an empty in-memory store, optionally pre-seeded.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load implements CredentialStore.
func (m *MemoryStore) Load() (string, error) { return m.token, nil }

// Save implements CredentialStore.
func (m *MemoryStore) Save(token string) error {
	m.token = token
	return nil
}

// Clear implements CredentialStore.
func (m *MemoryStore) Clear() error {
	m.token = ""
	return nil
}
