// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// # Local Disk Storage

// LocalStorage implements [Storage] on the local filesystem.
//
// Objects are written atomically: the payload lands in a temp file first
// and is renamed into place, so a crashed upload never leaves a partial
// object at a servable path.
type LocalStorage struct {
	dir string
}

// NewLocalStorage constructs a disk-backed [Storage] rooted at dir,
// creating the directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the storage root, for mounting a static file server.
func (storage *LocalStorage) Dir() string {
	return storage.dir
}

// Save writes the object's contents under the given name.
//
// Object names are flat; anything resembling a path is rejected to keep
// writes inside the storage root.
func (storage *LocalStorage) Save(context context.Context, objectName string, contents io.Reader) error {
	if objectName == "" || strings.ContainsAny(objectName, `/\`) || strings.Contains(objectName, "..") {
		return fmt.Errorf("media: invalid object name %q", objectName)
	}

	tmp, err := os.CreateTemp(storage.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("media: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("media: failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("media: failed to close upload: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(storage.dir, objectName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("media: failed to finalize upload: %w", err)
	}
	return nil
}
