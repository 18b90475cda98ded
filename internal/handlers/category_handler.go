package handlers

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/models"
)

// RegisterCategoryRoutes serves the fixed category list offered by the product form.
func RegisterCategoryRoutes(router fiber.Router) {
	router.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(models.Categories)
	})
}
