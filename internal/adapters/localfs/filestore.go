package localfs

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// Store implements ports.FileStore on the local filesystem.
type Store struct{}

func NewStore() Store { return Store{} }

var _ ports.FileStore = Store{}

func (Store) Copy(ctx context.Context, from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return mapFSError("open source", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return mapFSError("create destination", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(to)
		return mapFSError("copy", err)
	}
	return nil
}

func (Store) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return mapFSError("delete", err)
	}
	return nil
}

func (Store) Exists(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, mapFSError("stat", err)
	}
	return true, nil
}

func (Store) EnsureDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return mapFSError("mkdir", err)
	}
	return nil
}

func (Store) List(ctx context.Context, dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, mapFSError("list", err)
	}
	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

func mapFSError(op string, err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %s: %v", entities.ErrPermissionDenied, op, err)
	}
	return fmt.Errorf("%w: %s: %v", entities.ErrStorageUnavailable, op, err)
}
