package stores

import (
	"context"
	"encoding/json"

	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

type persisted interface {
	EntityID() string
}

// collection is the shared persisted-collection core behind every entity
// store: an in-memory ordered slice, newest first, written through to the
// backend as one JSON blob after every mutation.
//
// All mutations apply in memory synchronously before the backend write, so
// two rapid mutations always serialize correctly even if their writes race on
// disk. A failed write is logged and the in-memory state stands.
type collection[T persisted] struct {
	key     string
	backend ports.Backend
	log     *logger.Logger
	items   []T
}

func newCollection[T persisted](key string, backend ports.Backend, log *logger.Logger) collection[T] {
	return collection[T]{key: key, backend: backend, log: log}
}

// load replaces the in-memory state with whatever the backend holds. Missing
// key and malformed JSON both load as an empty collection; neither is fatal.
func (c *collection[T]) load(ctx context.Context) error {
	c.items = nil

	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		c.log.Warnw("Collection load failed, starting empty", "collection", c.key, "error", err.Error())
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.log.Warnw("Malformed persisted collection, starting empty", "collection", c.key, "error", err.Error())
		return nil
	}
	c.items = items
	return nil
}

// persist writes the whole collection through to the backend. Best effort:
// failures are logged, never propagated.
func (c *collection[T]) persist(ctx context.Context) {
	raw, err := json.Marshal(c.items)
	if err != nil {
		c.log.LogWriteThrough(c.key, err)
		return
	}
	c.log.LogWriteThrough(c.key, c.backend.Set(ctx, c.key, string(raw)))
}

// list returns a copy of the collection, insertion order preserved.
func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// prepend inserts a new entity at index 0 (most recently created first).
func (c *collection[T]) prepend(item T) {
	c.items = append([]T{item}, c.items...)
}

// replace swaps the entity with the same id in place, preserving order.
func (c *collection[T]) replace(item T) bool {
	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			return true
		}
	}
	return false
}

// remove deletes by id; removing an absent id is a no-op.
func (c *collection[T]) remove(id string) bool {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *collection[T]) clear() {
	c.items = nil
}
