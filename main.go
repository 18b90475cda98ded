package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"katalog/internal/cache"
	"katalog/internal/config"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/telemetry"
	"katalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	ctx := context.Background()

	// --- Tracing ---
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.TracingExport,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// --- Storage ---
	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize product store: %v", err)
	}
	if cfg.SeedDemoData {
		seedProducts(ctx, repo)
	}

	opts := []services.ProductServiceOption{
		services.WithCache(newCache(ctx, cfg)),
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Source: cfg.ServiceName})
		if err != nil {
			log.Printf("Warning: product events disabled, RabbitMQ unavailable: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
			opts = append(opts, services.WithPublisher(mqClient))
		}
	}

	// --- Services ---
	productService := services.NewProductService(repo, opts...)
	uploadService := services.NewUploadService(cfg.UploadDir, ImagesPath, cfg.MaxUploadBytes)

	// Another instance may share the store; drop our cached listings whenever
	// anyone reports a mutation.
	if mqClient != nil {
		err := mqClient.ConsumeProductEvents(func(event models.ProductEvent) error {
			log.Printf("Received %s event for product %d", event.Type, event.ProductID)
			productService.InvalidateCache(context.Background())
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	app := NewApp(Deps{
		Products:  productService,
		Uploads:   uploadService,
		UploadDir: cfg.UploadDir,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newRepository opens the product store selected by STORE_DRIVER.
func newRepository(cfg config.Config) (repositories.ProductRepository, error) {
	switch cfg.StoreDriver {
	case "json", "":
		return repositories.NewJSONProductRepository(cfg.DataFile), nil
	case "memory":
		return repositories.NewMemoryProductRepository(), nil
	case "sqlite", "postgres":
		dialector := sqlite.Open(cfg.DatabaseDSN)
		if cfg.StoreDriver == "postgres" {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.StoreDriver, err)
		}
		repo := repositories.NewGORMProductRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// newCache builds the listing cache selected by CACHE_DRIVER. An unreachable
// Redis falls back to the in-process cache.
func newCache(ctx context.Context, cfg config.Config) cache.Cache {
	switch cfg.CacheDriver {
	case "none":
		return cache.Nop{}
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: invalid REDIS_URL, using in-memory cache: %v", err)
			break
		}
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis unreachable, using in-memory cache: %v", err)
			client.Close()
			break
		}
		return cache.NewRedis(client, cache.WithRedisTTL(cfg.CacheTTL))
	case "memory", "":
	default:
		log.Printf("Warning: unknown CACHE_DRIVER %q, using in-memory cache", cfg.CacheDriver)
	}
	return cache.NewMemory(cache.WithTTL(cfg.CacheTTL))
}

// seedProducts fills an empty store with a few demo products.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) {
	existing, err := repo.Load(ctx)
	if err != nil {
		log.Printf("Skipping demo data, product store unreadable: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{ID: 1, Name: "Ahşap Masa", Brand: "Yıldız", Model: "YM-120", Color: "Ceviz", Category: "Mobilya", Price: 4500, Stock: 8, Description: "Masif ceviz yemek masası"},
		{ID: 2, Name: "Çelik Tencere Seti", Brand: "Korkmaz", Model: "K-7", Color: "Gümüş", Category: "Ev & Yaşam", Price: 1899.9, Stock: 25},
		{ID: 3, Name: "Masa Lambası", Brand: "Işıkçı", Model: "L-40", Color: "Beyaz", Category: "Aydınlatma", Price: 349.5, Stock: 40},
	}
	if err := repo.Save(ctx, products); err != nil {
		log.Printf("Error seeding products: %v", err)
		return
	}
	log.Printf("Seeded %d demo products", len(products))
}
