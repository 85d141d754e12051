package storage

import (
	"context"
	"sync"

	"github.com/studentplanner/core/internal/ports"
)

// MemoryBackend is an in-memory Backend used by tests. SetErr, when non-nil,
// makes every Set fail, which simulates an unavailable storage backend.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   map[string]string
	SetErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

var _ ports.Backend = (*MemoryBackend)(nil)

func (b *MemoryBackend) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.data[key]
	return value, ok, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key, value string) error {
	if b.SetErr != nil {
		return b.SetErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *MemoryBackend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Seed stores a raw value directly, bypassing SetErr; tests use it to stage
// pre-existing (possibly malformed) persisted state.
func (b *MemoryBackend) Seed(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}
