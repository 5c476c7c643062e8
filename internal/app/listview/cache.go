// Package listview implements the controller every management view is
// built from: a per-view fetch cache over one entity collection, a
// composable filter predicate set, a sort comparator, and a paginator.
package listview

import (
	"context"
	"sync"
	"time"
)

// MessageTTL is how long transient success and error notifications stay
// visible before auto-dismissing.
const MessageTTL = 5 * time.Second

// Loader fetches one entity collection from the backend.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Cache holds the last fetched copy of one entity collection plus its
// transient status. Each view owns exactly one cache; two views showing
// the same entity may hold divergent stale copies until each re-fetches.
//
// A failed fetch keeps the previous items visible (stale-but-available).
// Every fetch is stamped with a monotonic generation so a slow response
// can never overwrite the result of a later request.
type Cache[T any] struct {
	mu     sync.Mutex
	loader Loader[T]

	items       []T
	lastFetched time.Time

	issued  uint64 // generation of the most recently issued fetch
	applied uint64 // generation of the most recently applied response

	errMsg       string
	errSetAt     time.Time
	successMsg   string
	successSetAt time.Time

	now func() time.Time
}

// NewCache creates a cache backed by the given loader.
func NewCache[T any](loader Loader[T]) *Cache[T] {
	return &Cache[T]{loader: loader, now: time.Now}
}

// Fetch issues exactly one request through the loader and applies the
// response unless a later fetch has already been applied. On success the
// cached items are replaced and the error cleared; on failure the error
// message is recorded and the previous items stay untouched.
func (c *Cache[T]) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	generation := c.issued
	c.mu.Unlock()

	items, err := c.loader(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation <= c.applied {
		// An out-of-order response; a newer one already landed.
		return err
	}
	c.applied = generation

	if err != nil {
		c.errMsg = err.Error()
		c.errSetAt = c.now()
		return err
	}

	c.items = items
	c.lastFetched = c.now()
	c.errMsg = ""
	return nil
}

// Items returns a copy of the cached collection.
func (c *Cache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached items.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Loading reports whether a fetch is in flight.
func (c *Cache[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issued > c.applied
}

// LastFetched returns when the cached items last changed.
func (c *Cache[T]) LastFetched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetched
}

// Error returns the current error notification, or "" once it has
// auto-dismissed.
func (c *Cache[T]) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errMsg != "" && c.now().Sub(c.errSetAt) > MessageTTL {
		c.errMsg = ""
	}
	return c.errMsg
}

// ClearError dismisses the error notification immediately.
func (c *Cache[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}

// SetSuccess records a transient success notification.
func (c *Cache[T]) SetSuccess(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successMsg = msg
	c.successSetAt = c.now()
}

// Success returns the current success notification, or "" once it has
// auto-dismissed.
func (c *Cache[T]) Success() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.successMsg != "" && c.now().Sub(c.successSetAt) > MessageTTL {
		c.successMsg = ""
	}
	return c.successMsg
}

// ClearSuccess dismisses the success notification immediately.
func (c *Cache[T]) ClearSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successMsg = ""
}
