package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFileName   = "token"
	profileFileName = "profile.json"
)

// FileStore keeps the session state in files under a directory. The
// token file is written with 0600 permissions since it grants access to
// the account.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the state directory if needed and returns a
// store backed by it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) tokenPath() string   { return filepath.Join(s.dir, tokenFileName) }
func (s *FileStore) profilePath() string { return filepath.Join(s.dir, profileFileName) }

func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.tokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) SetToken(token string) error {
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

func (s *FileStore) ClearToken() error {
	return removeIfExists(s.tokenPath())
}

func (s *FileStore) Profile() (*Profile, error) {
	data, err := os.ReadFile(s.profilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return p, nil
}

func (s *FileStore) SetProfile(p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(s.profilePath(), data, 0o600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func (s *FileStore) ClearProfile() error {
	return removeIfExists(s.profilePath())
}

func (s *FileStore) Clear() error {
	if err := s.ClearToken(); err != nil {
		return err
	}
	return s.ClearProfile()
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
