package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// FileBackend stores each collection as one JSON file under the data
// directory. Writes go through a temp file and rename so a crashed write
// never leaves a half-written collection behind.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed and returns a backend
// rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

var _ ports.Backend = (*FileBackend)(nil)

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: read %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return string(raw), true, nil
}

func (b *FileBackend) Set(ctx context.Context, key, value string) error {
	tmp := b.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	if err := os.Rename(tmp, b.path(key)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: commit %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (b *FileBackend) Remove(ctx context.Context, key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", entities.ErrStorageUnavailable, key, err)
	}
	return nil
}
