package ports

import "context"

// Backend is the key-value persistence adapter behind every entity store.
// Values are whole collections serialized as JSON text. A missing key is not
// an error; callers treat it as an empty collection.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// FileStore abstracts the attachment directory. Delete is idempotent on a
// missing file.
type FileStore interface {
	Copy(ctx context.Context, from, to string) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	EnsureDir(ctx context.Context, path string) error
	List(ctx context.Context, dir string) ([]string, error)
}

// ImagePicker is the external image-picking capability. Pick returns the
// local path of the chosen file, entities.ErrPickCancelled when the user
// backs out, or entities.ErrPermissionDenied when the runtime refuses access.
type ImagePicker interface {
	Pick(ctx context.Context) (string, error)
}
