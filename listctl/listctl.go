// Package listctl keeps a page's visible collection synchronized with backend
// state under create, update and delete operations.
//
// Every mutation is confirm-then-reflect: the local list changes only after
// the backend confirms the round trip. A failed call therefore leaves the
// list pointwise identical to its pre-call value; there is no rollback path
// because nothing was ever optimistically applied.
package listctl

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Config wires a Controller to one entity collection.
type Config[T any] struct {
	// Fetch loads the full collection (required).
	Fetch func(ctx context.Context) ([]T, error)
	// ID extracts the server-assigned id of an entity (required).
	ID func(T) uuid.UUID
	// Less, when set, keeps the list sorted after loads and inserts. Used
	// where order reflects a server-assigned sequence field (grade order);
	// otherwise insertion position is a display concern only.
	Less func(a, b T) bool
}

// Controller synchronizes one entity collection. Zero value is not usable;
// create controllers with New.
//
// Concurrent operations on the same id are not queued or cancelled; the last
// backend response wins.
type Controller[T any] struct {
	cfg Config[T]

	mu      sync.Mutex
	items   []T
	loading bool
	err     error
	closed  bool
}

// New creates a controller for one collection.
func New[T any](cfg Config[T]) *Controller[T] {
	return &Controller[T]{cfg: cfg}
}

// Items returns a copy of the current list.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a Load is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last surfaced failure, or nil. Cleared by the next
// successful operation.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close abandons the controller, as when the owning page unmounts. Results of
// in-flight calls resolving after Close are discarded silently; they never
// mutate state.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Load fetches the full collection and replaces the local list wholesale.
// On failure the list keeps its prior value and the error is surfaced; the
// loading flag clears either way.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	items, err := c.cfg.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	if c.cfg.Less != nil {
		sort.SliceStable(items, func(i, j int) bool { return c.cfg.Less(items[i], items[j]) })
	}
	c.items = items
	c.err = nil
	return nil
}

// Create runs the round trip and, only after backend success, merges the
// returned canonical entity into the list (re-sorting when ordered). On
// failure the list is unchanged.
func (c *Controller[T]) Create(ctx context.Context, do func(ctx context.Context) (T, error)) (T, error) {
	entity, err := do(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return entity, err
	}
	if err != nil {
		c.err = err
		return entity, err
	}

	c.items = append(c.items, entity)
	if c.cfg.Less != nil {
		sort.SliceStable(c.items, func(i, j int) bool { return c.cfg.Less(c.items[i], c.items[j]) })
	}
	c.err = nil
	return entity, nil
}

// Update runs the round trip and, only after backend success, replaces the
// entity at id with the server-confirmed value. On failure the local entity
// is untouched.
func (c *Controller[T]) Update(ctx context.Context, id uuid.UUID, do func(ctx context.Context) (T, error)) error {
	entity, err := do(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return err
	}
	if err != nil {
		c.err = err
		return err
	}

	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			c.items[i] = entity
			break
		}
	}
	if c.cfg.Less != nil {
		sort.SliceStable(c.items, func(i, j int) bool { return c.cfg.Less(c.items[i], c.items[j]) })
	}
	c.err = nil
	return nil
}

// Remove runs the round trip and deletes the entity from the list only after
// the backend confirms. A failed delete leaves the entity visible.
func (c *Controller[T]) Remove(ctx context.Context, id uuid.UUID, do func(ctx context.Context) error) error {
	err := do(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return err
	}
	if err != nil {
		c.err = err
		return err
	}

	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.err = nil
	return nil
}
