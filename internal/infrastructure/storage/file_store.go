package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")
)

// FileStore keeps prescription documents in a flat namespace keyed by file name.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}

// ValidName reports whether name is a bare file name with no directory parts.
func ValidName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
