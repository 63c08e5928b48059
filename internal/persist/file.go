package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each key as one JSON file under a directory. It is the
// local-profile analogue of the cache layers elsewhere in the system: small,
// flat, and safe to throw away.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s failed: %w", key, err)
	}
	return data, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir failed: %w", err)
	}
	if err := os.WriteFile(f.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write %s failed: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s failed: %w", key, err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
