package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"katalog/internal/models"
)

// GORMProductRepository stores the catalog as rows of the products table.
// Whole-collection semantics are kept: Save replaces every row in one transaction.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Migrate creates or updates the products table.
func (r *GORMProductRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// Load retrieves all products ordered by id, which is their creation order.
func (r *GORMProductRepository) Load(ctx context.Context) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "GORMProductRepository.Load")
	defer span.End()

	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// Save replaces the table contents with products.
func (r *GORMProductRepository) Save(ctx context.Context, products []models.Product) error {
	ctx, span := tracer.Start(ctx, "GORMProductRepository.Save")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if len(products) == 0 {
			return nil
		}
		rows := clone(products)
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
