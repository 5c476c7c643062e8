package listview

import (
	"context"
	"sync"
)

// KeyedLoader fetches one entity collection scoped to an int64 key,
// typically a user or department id.
type KeyedLoader[T any] func(ctx context.Context, key int64) ([]T, error)

// KeyedCache lazily maintains one Cache per key, so per-user views such
// as schedules get the same stale-but-available and generation-stamping
// behavior as the shared collection views.
type KeyedCache[T any] struct {
	mu     sync.Mutex
	loader KeyedLoader[T]
	caches map[int64]*Cache[T]
}

// NewKeyedCache creates an empty keyed cache backed by the loader.
func NewKeyedCache[T any](loader KeyedLoader[T]) *KeyedCache[T] {
	return &KeyedCache[T]{loader: loader, caches: make(map[int64]*Cache[T])}
}

// For returns the cache for the key, creating it on first use.
func (k *KeyedCache[T]) For(key int64) *Cache[T] {
	k.mu.Lock()
	defer k.mu.Unlock()
	if c, ok := k.caches[key]; ok {
		return c
	}
	c := NewCache(func(ctx context.Context) ([]T, error) {
		return k.loader(ctx, key)
	})
	k.caches[key] = c
	return c
}
