// Package cache holds listing responses keyed by their query parameters.
//
// Entries are never invalidated one by one: a page is keyed by filter, sort and
// page number rather than by product id, so any catalog mutation purges every
// cached listing through InvalidateAll.
package cache

import (
	"context"
	"time"

	"katalog/internal/models"
)

// DefaultTTL is how long a listing stays valid after it was stored.
const DefaultTTL = 5 * time.Minute

// Cache stores product listing pages.
type Cache interface {
	// Get returns the page stored under key if it has not expired.
	Get(ctx context.Context, key string) (models.ProductPage, bool)

	// Set stores page under key.
	Set(ctx context.Context, key string, page models.ProductPage) error

	// InvalidateAll drops every cached listing.
	InvalidateAll(ctx context.Context) error

	// Stats returns hit and miss counters.
	Stats() Stats
}

// Stats are cache counters for monitoring.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Clock reports the current time. Tests inject a fake one.
type Clock func() time.Time

// Nop is a Cache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (models.ProductPage, bool) {
	return models.ProductPage{}, false
}

func (Nop) Set(context.Context, string, models.ProductPage) error { return nil }

func (Nop) InvalidateAll(context.Context) error { return nil }

func (Nop) Stats() Stats { return Stats{} }
