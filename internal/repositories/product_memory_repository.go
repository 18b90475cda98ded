package repositories

import (
	"context"
	"sync"

	"katalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// It holds a private copy of the document; callers never share its slice.
type MemoryProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a repository seeded with a copy of products.
func NewMemoryProductRepository(products ...models.Product) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: clone(products),
	}
}

// Load returns a copy of the stored collection.
func (r *MemoryProductRepository) Load(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.products), nil
}

// Save replaces the stored collection with a copy of products.
func (r *MemoryProductRepository) Save(_ context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = clone(products)
	return nil
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
