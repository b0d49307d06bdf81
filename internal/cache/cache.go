package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/internal/utils"
)

// Loader produces a fresh value for a cache key.
type Loader[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value   V
	err     error
	loaded  time.Time
	pending *sync.WaitGroup
}

// Cache is a read-through cache with a freshness window. At most one loader
// runs per key at a time; concurrent callers for the same key wait for the
// in-flight load instead of issuing their own.
//
// Values must be treated as read-only snapshots by callers. The cache never
// mutates them, which keeps cached and fresh results indistinguishable.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	ttl     time.Duration
	clock   utils.Clock
}

func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithClock[V](ttl, &utils.SystemClock{})
}

func NewWithClock[V any](ttl time.Duration, clock utils.Clock) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]*entry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

// GetOrLoad returns the cached value for key when it is still fresh,
// otherwise invokes loader and stores the result. A failed load is stored
// stale, so waiters observe the error once and the next caller retries.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V]) (V, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.pending == nil && e.err == nil && c.clock.Now().Sub(e.loaded) < c.ttl {
		c.mu.Unlock()
		log.Tracef("cache hit for key %s", key)
		return e.value, nil
	}
	if ok && e.pending != nil {
		// Another caller is loading this key, wait for its result.
		wg := e.pending
		c.mu.Unlock()
		wg.Wait()

		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok && e.pending == nil {
			return e.value, e.err
		}
		var zero V
		return zero, ctx.Err()
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	c.entries[key] = &entry[V]{pending: wg}
	c.mu.Unlock()

	value, err := loader(ctx)

	c.mu.Lock()
	if err != nil {
		log.Debugf("cache load failed for key %s: %v", key, err)
		// Zero loaded time keeps the entry stale, the next caller retries.
		c.entries[key] = &entry[V]{err: err}
	} else {
		c.entries[key] = &entry[V]{value: value, loaded: c.clock.Now()}
	}
	c.mu.Unlock()
	wg.Done()

	return value, err
}

// Invalidate removes a single key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every key starting with prefix. Used to drop all
// cached windows of one company when its records change.
func (c *Cache[V]) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of stored entries, fresh or stale.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
