package localfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/studentplanner/core/internal/domain/entities"
)

func TestStore_CopyAndExists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	ctx := context.Background()

	src := filepath.Join(dir, "src.png")
	if err := os.WriteFile(src, []byte("png-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.png")
	if err := store.Copy(ctx, src, dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	content, err := os.ReadFile(dst)
	if err != nil || string(content) != "png-bytes" {
		t.Errorf("copied content = %q, err = %v", content, err)
	}

	ok, err := store.Exists(ctx, dst)
	if err != nil || !ok {
		t.Errorf("Exists() = (%t, %v), want (true, nil)", ok, err)
	}
	ok, err = store.Exists(ctx, filepath.Join(dir, "nope.png"))
	if err != nil || ok {
		t.Errorf("Exists() on missing = (%t, %v), want (false, nil)", ok, err)
	}
}

func TestStore_CopyErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	ctx := context.Background()

	missing := filepath.Join(dir, "missing.png")
	if err := store.Copy(ctx, missing, filepath.Join(dir, "out.png")); !errors.Is(err, entities.ErrStorageUnavailable) {
		t.Errorf("Copy() from missing source error = %v, want ErrStorageUnavailable", err)
	}

	src := filepath.Join(dir, "src.png")
	os.WriteFile(src, []byte("x"), 0o600)
	dst := filepath.Join(dir, "dst.png")
	os.WriteFile(dst, []byte("y"), 0o600)

	if err := store.Copy(ctx, src, dst); err == nil {
		t.Error("Copy() over existing destination should fail")
	}
}

func TestStore_DeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	ctx := context.Background()

	path := filepath.Join(dir, "file.png")
	os.WriteFile(path, []byte("x"), 0o600)

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, path); err != nil {
		t.Errorf("Delete() of missing file error = %v, want nil", err)
	}
}

func TestStore_ListSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	ctx := context.Background()

	os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o600)
	os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0o600)
	os.Mkdir(filepath.Join(dir, "sub"), 0o755)

	names, err := store.List(ctx, dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List() = %v, want the two files only", names)
	}
}

func TestStore_ListMissingDirectory(t *testing.T) {
	store := NewStore()

	names, err := store.List(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil || names != nil {
		t.Errorf("List() on missing dir = (%v, %v), want (nil, nil)", names, err)
	}
}

func TestStore_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store := NewStore()
	ctx := context.Background()

	if err := store.EnsureDir(ctx, dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := store.EnsureDir(ctx, dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v, want nil", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestPathPicker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	os.WriteFile(path, []byte("x"), 0o600)
	ctx := context.Background()

	picked, err := PathPicker{Path: path}.Pick(ctx)
	if err != nil || picked != path {
		t.Errorf("Pick() = (%q, %v), want the path back", picked, err)
	}

	if _, err := (PathPicker{}).Pick(ctx); !errors.Is(err, entities.ErrPickCancelled) {
		t.Errorf("Pick() with empty path error = %v, want ErrPickCancelled", err)
	}

	if _, err := (PathPicker{Path: filepath.Join(dir, "nope.jpg")}).Pick(ctx); err == nil {
		t.Error("Pick() of missing file should fail")
	}
}
