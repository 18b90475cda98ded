package repositories

import (
	"context"
	"errors"

	"katalog/internal/models"
)

// ErrCorruptDocument is returned by Load when the stored document exists but cannot be decoded.
// Load still returns an empty, non-nil collection alongside it.
var ErrCorruptDocument = errors.New("product document is corrupt")

// ProductRepository is the persistence boundary around the product document.
// Load and Save always operate on the whole collection.
type ProductRepository interface {
	Load(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, products []models.Product) error
}
