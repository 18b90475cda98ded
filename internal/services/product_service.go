package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"katalog/internal/cache"
	"katalog/internal/models"
	"katalog/internal/repositories"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

var tracer = otel.Tracer("katalog/internal/services")

// EventPublisher announces catalog mutations to other interested parties.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
//
// Every mutation re-reads the document, changes an in-memory copy and writes the
// whole document back while holding mu, so two mutations in this process never
// interleave. Writers in other processes sharing the same document are not coordinated.
type ProductService struct {
	repo      repositories.ProductRepository
	cache     cache.Cache
	publisher EventPublisher
	validate  *validator.Validate
	now       func() time.Time

	mu sync.Mutex

	// cacheMu orders listing writes against invalidations. generation counts
	// invalidations so a listing computed from a document loaded before one is
	// never cached after it.
	cacheMu    sync.RWMutex
	generation uint64
}

// ProductServiceOption customises a ProductService.
type ProductServiceOption func(*ProductService)

// WithCache sets the listing cache. Without it listings are always computed.
func WithCache(c cache.Cache) ProductServiceOption {
	return func(s *ProductService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithPublisher sets where mutation events are published.
func WithPublisher(p EventPublisher) ProductServiceOption {
	return func(s *ProductService) {
		s.publisher = p
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:     repo,
		cache:    cache.Nop{},
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns one page of the catalog for q. The second result reports
// whether the page was served from the cache. A corrupt document is logged and
// listed as an empty catalog so the listing stays available.
func (s *ProductService) ListProducts(ctx context.Context, q Query) (models.ProductPage, bool, error) {
	ctx, span := tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	key := q.CacheKey()
	if page, ok := s.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return page, true, nil
	}

	generation := s.cacheGeneration()
	products, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrCorruptDocument) {
			log.Printf("Listing an empty catalog, product document unreadable: %v", err)
			return ApplyQuery(nil, q), false, nil
		}
		span.RecordError(err)
		return models.ProductPage{}, false, fmt.Errorf("failed to load products: %w", err)
	}

	page := ApplyQuery(products, q)
	s.cacheListing(ctx, key, page, generation)
	return page, false, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", id))

	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	i := indexOf(products, id)
	if i < 0 {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	product := products[i]
	return &product, nil
}

// CreateProduct validates product, assigns it the next free id and appends it
// to the catalog. Any id set by the caller is replaced.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	if err := s.validate.Struct(product); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	product.ID = nextID(products)
	products = append(products, product)
	if err := s.repo.Save(ctx, products); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	span.SetAttributes(attribute.Int("product.id", product.ID))

	s.afterMutation(ctx, models.EventProductCreated, product)
	return &product, nil
}

// UpdateProduct overlays patch onto the product with the given id. The id
// itself never changes, whatever the patch carries.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", id))

	if err := s.validate.Struct(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	i := indexOf(products, id)
	if i < 0 {
		return nil, fmt.Errorf("product with ID %d not found for update: %w", id, ErrProductNotFound)
	}

	updated := patch.Apply(products[i])
	updated.ID = products[i].ID
	products[i] = updated
	if err := s.repo.Save(ctx, products); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.afterMutation(ctx, models.EventProductUpdated, updated)
	return &updated, nil
}

// DeleteProduct removes the product with the given id and returns it.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	i := indexOf(products, id)
	if i < 0 {
		return nil, fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrProductNotFound)
	}

	removed := products[i]
	products = append(products[:i], products[i+1:]...)
	if err := s.repo.Save(ctx, products); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	s.afterMutation(ctx, models.EventProductDeleted, removed)
	return &removed, nil
}

// InvalidateCache drops every cached listing. It is called after local
// mutations and when another instance reports one.
func (s *ProductService) InvalidateCache(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("Warning: failed to invalidate product listing cache: %v", err)
	}
}

func (s *ProductService) cacheGeneration() uint64 {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return s.generation
}

// cacheListing stores page unless the cache was invalidated after the
// listing's document was loaded.
func (s *ProductService) cacheListing(ctx context.Context, key string, page models.ProductPage, generation uint64) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	if s.generation != generation {
		return
	}
	if err := s.cache.Set(ctx, key, page); err != nil {
		log.Printf("Warning: failed to cache product listing %s: %v", key, err)
	}
}

// CacheStats exposes the listing cache counters.
func (s *ProductService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *ProductService) afterMutation(ctx context.Context, eventType string, product models.Product) {
	s.InvalidateCache(ctx)

	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", eventType, product.ID, err)
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func indexOf(products []models.Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextID is one more than the highest id in use, or 1 for an empty catalog.
func nextID(products []models.Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
