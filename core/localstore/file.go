package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON file, the desktop analog of a
// browser's localStorage. Every write rewrites the whole file atomically
// (temp file + rename), which is fine for the handful of keys a dashboard
// client keeps.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFile opens or creates the store at path. A missing file yields an
// empty store; a corrupt file is an error so callers do not silently lose
// a saved session.
func NewFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, errors.Join(ErrStorageUnavailable, err)
		}
	}
	return f, nil
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set implements Store.
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.persist()
}

// Delete implements Store.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.persist()
}

// persist writes the current map to disk. Caller must hold f.mu.
func (f *File) persist() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".localstore-*")
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
