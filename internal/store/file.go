// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"errors"
	"os"
	"path/filepath"

	"hopelink/cli/internal/xdg"
)

// sessionFileName is the well-known slot for the serialized session record.
const sessionFileName = "session.json"

// FileStore persists the session record as a private file on disk.
type FileStore struct {
	path string
}

// OpenFile returns a FileStore rooted in the XDG state directory.
func OpenFile() (*FileStore, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, sessionFileName)}, nil
}

// NewFileStore returns a FileStore using an explicit path. Intended for tests.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Write replaces the stored record with 0600 permissions.
func (s *FileStore) Write(data []byte) error {
	return os.WriteFile(s.path, data, 0o600)
}

// Read returns the stored bytes, or (nil, nil) when the slot is empty.
func (s *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Clear removes the record. Idempotent.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
