package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is what Download returns for a missing object.
var ErrNotFound = errors.New("storage: object not found")

// Storage holds report files by relative path. Backends must treat a
// missing object as a no-op on Delete.
type Storage interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	// Download's caller closes the reader.
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
