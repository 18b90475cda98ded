package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"katalog/internal/models"
)

var tracer = otel.Tracer("katalog/internal/repositories")

// JSONProductRepository keeps the catalog as a single JSON array on disk.
type JSONProductRepository struct {
	path string
}

// NewJSONProductRepository creates a repository backed by the file at path.
// The file and its directory are created on the first Save.
func NewJSONProductRepository(path string) *JSONProductRepository {
	return &JSONProductRepository{
		path: path,
	}
}

// Path returns the location of the backing document.
func (r *JSONProductRepository) Path() string {
	return r.path
}

// Load reads and decodes the whole document. A missing file is an empty catalog.
func (r *JSONProductRepository) Load(ctx context.Context) ([]models.Product, error) {
	_, span := tracer.Start(ctx, "JSONProductRepository.Load")
	defer span.End()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Product{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		span.RecordError(err)
		return []models.Product{}, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, r.path, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// Save replaces the document with products. The new content is written to a
// temporary file in the same directory and renamed over the old one, so readers
// see either the previous or the new document.
func (r *JSONProductRepository) Save(ctx context.Context, products []models.Product) error {
	_, span := tracer.Start(ctx, "JSONProductRepository.Save")
	defer span.End()
	span.SetAttributes(attribute.Int("products.count", len(products)))

	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	// Removing after a successful rename is a no-op error we ignore.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		span.RecordError(err)
		return fmt.Errorf("failed to write products: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync products: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}
