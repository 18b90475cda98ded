package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"katalog/internal/handlers"
	"katalog/internal/i18n"
	"katalog/internal/middleware"
	"katalog/internal/services"
)

// ImagesPath is the URL prefix uploaded images are served under.
const ImagesPath = "/images"

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Products  *services.ProductService
	Uploads   *services.UploadService
	UploadDir string
}

// NewApp builds the Fiber app with every route of the catalog API.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "katalog",
		// Oversized uploads must reach the handler to get a localised 400.
		BodyLimit: int(2 * deps.Uploads.MaxBytes()),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Language())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
	}))

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewProductHandler(deps.Products).RegisterRoutes(api)
	handlers.NewUploadHandler(deps.Uploads).RegisterRoutes(api)
	handlers.RegisterCategoryRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"cache":  deps.Products.CacheStats(),
		})
	})

	app.Static(ImagesPath, deps.UploadDir)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": i18n.T(middleware.Lang(c), i18n.RouteNotFound),
		})
	})

	return app
}
