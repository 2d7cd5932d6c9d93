// Package local keeps reports as files under one directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return NewStorage(cfg.Local.BasePath)
	})
}

var _ storage.Storage = (*Storage)(nil)

// Storage is rooted with os.Root, so no object path can reach outside the
// base directory even through symlinks.
type Storage struct {
	root *os.Root
}

// NewStorage creates basePath if needed and opens it as the root.
func NewStorage(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: open base directory: %w", err)
	}
	return &Storage{root: root}, nil
}

// clean turns an object path into a root-relative name. Leading ".."
// segments are dropped rather than rejected.
func clean(p string) string {
	return filepath.FromSlash(path.Clean("/" + p)[1:])
}

// Upload writes to a temporary sibling and renames it into place so a
// concurrent Download never sees half a report.
func (s *Storage) Upload(_ context.Context, objectPath string, r io.Reader) error {
	name := clean(objectPath)
	if dir := filepath.Dir(name); dir != "." {
		if err := s.root.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("storage: create directory: %w", err)
		}
	}

	tmp := filepath.Join(filepath.Dir(name), ".upload-"+uuid.NewString())
	f, err := s.root.Create(tmp)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = s.root.Rename(tmp, name)
	}
	if err != nil {
		_ = s.root.Remove(tmp)
		return fmt.Errorf("storage: write %s: %w", objectPath, err)
	}
	return nil
}

func (s *Storage) Download(_ context.Context, objectPath string) (io.ReadCloser, error) {
	f, err := s.root.Open(clean(objectPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, objectPath)
	case err != nil:
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return f, nil
}

func (s *Storage) Delete(_ context.Context, objectPath string) error {
	if err := s.root.Remove(clean(objectPath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

func (s *Storage) Exists(_ context.Context, objectPath string) (bool, error) {
	_, err := s.root.Stat(clean(objectPath))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("storage: stat file: %w", err)
	}
}
