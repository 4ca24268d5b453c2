// Package cache is the shared model cache. Values stored in it are shared by
// every reader and must be treated as read-only.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"

	"storenews/app/logger"
	"storenews/app/metrics"
)

// Manager is a key/value cache with read-through loading.
type Manager interface {
	// Get returns the value under key, calling acquire and storing its result
	// on a miss. Concurrent misses for one key share a single acquire call.
	Get(ctx context.Context, key string, acquire func(ctx context.Context) (any, error)) (any, error)
	Set(key string, value any)
	Remove(key string)
	RemoveByPrefix(prefix string)
	Clear()
}

// Options sizes a RistrettoManager.
type Options struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
}

// RistrettoManager implements Manager on a ristretto cache. Entries never expire;
// they leave the cache on eviction or explicit removal.
type RistrettoManager struct {
	cache *ristretto.Cache[string, any]
	group singleflight.Group
	keys  sync.Map
	// gen is bumped by every removal. A loaded value is only stored if no
	// removal happened while it was being computed.
	gen atomic.Uint64
	mu  sync.Mutex
}

// NewRistrettoManager creates a cache manager. Every entry costs 1, so MaxCost is
// the maximum number of entries.
func NewRistrettoManager(opts Options) (*RistrettoManager, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters:        opts.NumCounters,
		MaxCost:            opts.MaxCost,
		BufferItems:        opts.BufferItems,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &RistrettoManager{cache: c}, nil
}

func (m *RistrettoManager) Get(ctx context.Context, key string, acquire func(ctx context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v, ok := m.cache.Get(key); ok {
		metrics.ObserveCacheLookup(true)
		return v, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		// Another caller may have filled the key while we waited.
		if v, ok := m.cache.Get(key); ok {
			metrics.ObserveCacheLookup(true)
			return v, nil
		}
		metrics.ObserveCacheLookup(false)

		gen := m.gen.Load()
		// Waiters share the result, so it outlives the first caller's cancellation.
		v, err := acquire(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if !m.setIfCurrent(key, v, gen) {
			logger.WithFields(logger.Fields{"key": key}).Debug("cache entry invalidated while loading, not stored")
			return v, nil
		}
		logger.WithFields(logger.Fields{"key": key}).Debug("cache entry populated")
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set stores value under key and waits until the write is visible.
func (m *RistrettoManager) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, value)
}

func (m *RistrettoManager) set(key string, value any) {
	m.cache.Set(key, value, 1)
	m.cache.Wait()
	m.keys.Store(key, struct{}{})
}

// setIfCurrent stores value unless a removal happened after gen was read.
func (m *RistrettoManager) setIfCurrent(key string, value any, gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen.Load() != gen {
		return false
	}
	m.set(key, value)
	return true
}

func (m *RistrettoManager) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen.Add(1)
	m.remove(key)
}

func (m *RistrettoManager) remove(key string) {
	m.cache.Del(key)
	m.keys.Delete(key)
	metrics.CacheEvictionsTotal.Inc()
}

// RemoveByPrefix removes every key starting with prefix. Loads in flight for
// any key are not stored.
func (m *RistrettoManager) RemoveByPrefix(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen.Add(1)
	m.keys.Range(func(k, _ any) bool {
		key := k.(string)
		if strings.HasPrefix(key, prefix) {
			m.remove(key)
		}
		return true
	})
}

func (m *RistrettoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen.Add(1)
	m.cache.Clear()
	m.keys.Range(func(k, _ any) bool {
		m.keys.Delete(k)
		return true
	})
}

// Close stops the cache's background goroutines.
func (m *RistrettoManager) Close() {
	m.cache.Close()
}

// GetOrCompute is Get with a typed value.
func GetOrCompute[T any](ctx context.Context, m Manager, key string, acquire func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := m.Get(ctx, key, func(ctx context.Context) (any, error) {
		return acquire(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: value under %q is %T, not %T", key, v, zero)
	}
	return t, nil
}
