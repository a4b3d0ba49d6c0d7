// Package storage defines the FileStore interface used to persist generated
// videos. Callers can swap between local disk and S3-compatible object
// stores without changing application code.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating existing content.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// URI returns a human-readable location for path, such as an absolute
	// file path or s3://bucket/key.
	URI(path string) string
}

// ErrInvalidPath is returned for paths that escape the store root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Putter is implemented by stores that can upload a complete buffer in one
// call, with a known length, instead of streaming through Write.
type Putter interface {
	Put(ctx context.Context, path string, data []byte) error
}

// Save writes data to path in fs and returns the URI of the stored file.
// Stores implementing Putter receive data in a single Put.
func Save(ctx context.Context, fs FileStore, path string, data []byte) (string, error) {
	if p, ok := fs.(Putter); ok {
		if err := p.Put(ctx, path, data); err != nil {
			return "", fmt.Errorf("storage: put %s: %w", path, err)
		}
		return fs.URI(path), nil
	}
	w, err := fs.Write(ctx, path)
	if err != nil {
		return "", fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", path, err)
	}
	return fs.URI(path), nil
}
