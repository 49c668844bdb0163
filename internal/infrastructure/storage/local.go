package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type localFileStore struct {
	dir string
}

// NewLocalFileStore creates dir when missing.
func NewLocalFileStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prescription dir %s: %w", dir, err)
	}
	return &localFileStore{dir: dir}, nil
}

// Save writes to a temporary file first so readers never see a partial document.
func (s *localFileStore) Save(_ context.Context, name string, r io.Reader) error {
	if !ValidName(name) {
		return ErrInvalidFileName
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

func (s *localFileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, ErrFileNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *localFileStore) Exists(_ context.Context, name string) (bool, error) {
	if !ValidName(name) {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *localFileStore) Delete(_ context.Context, name string) error {
	if !ValidName(name) {
		return ErrFileNotFound
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
