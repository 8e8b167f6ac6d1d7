package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File implements Store as a single file holding the raw token string with
// no envelope around it. This is the desktop/CLI analog of a browser's
// origin-scoped local storage: one fixed location, survives restarts, owned
// by the current user only (0600).
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store at the given path. The parent
// directory is created on first Save, not here, so constructing a store
// never touches the filesystem.
func NewFile(path string) *File {
	return &File{path: path}
}

// Save writes the token to the file, creating the parent directory as
// needed. The write goes through a temp file and rename so a crash cannot
// leave a truncated token behind.
func (f *File) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Load reads the token from the file. A missing file means no token.
func (f *File) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear removes the token file. Removing a file that is already gone is not
// an error.
func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
