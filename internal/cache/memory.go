package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"katalog/internal/models"
)

type entry struct {
	page     models.ProductPage
	storedAt time.Time
}

// Memory is a process-local cache. It is unbounded by entry count; the TTL and
// the small listing keyspace keep it small.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     Clock

	hits   int64
	misses int64
}

// MemoryOption customises a Memory cache.
type MemoryOption func(*Memory)

// WithTTL sets how long entries stay valid. Non-positive values are ignored.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(clock Clock) MemoryOption {
	return func(m *Memory) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMemory creates an empty in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached page while now - storedAt < TTL. Expired entries are removed.
func (m *Memory) Get(_ context.Context, key string) (models.ProductPage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		atomic.AddInt64(&m.misses, 1)
		return models.ProductPage{}, false
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, key)
		atomic.AddInt64(&m.misses, 1)
		return models.ProductPage{}, false
	}
	atomic.AddInt64(&m.hits, 1)
	return copyPage(e.page), true
}

// Set stores a copy of page under key.
func (m *Memory) Set(_ context.Context, key string, page models.ProductPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{page: copyPage(page), storedAt: m.now()}
	return nil
}

// InvalidateAll empties the cache.
func (m *Memory) InvalidateAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	return nil
}

// Stats returns the hit/miss counters and the number of stored entries.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()

	return Stats{
		Hits:    atomic.LoadInt64(&m.hits),
		Misses:  atomic.LoadInt64(&m.misses),
		Entries: n,
	}
}

func copyPage(page models.ProductPage) models.ProductPage {
	products := make([]models.Product, len(page.Products))
	copy(products, page.Products)
	page.Products = products
	return page
}
