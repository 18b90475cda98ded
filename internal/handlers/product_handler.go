package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/i18n"
	"katalog/internal/models"
	"katalog/internal/services"
)

// ListCacheControl is sent with every product listing.
const ListCacheControl = "private, max-age=60"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts returns one page of the filtered, sorted catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	q := services.ParseQuery(
		c.Query("page"),
		c.Query("limit"),
		c.Query("search"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
	)

	page, hit, err := h.service.ListProducts(c.UserContext(), q)
	if err != nil {
		logError(c, "listing products", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.FetchFailed)
	}

	if hit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	c.Set(fiber.HeaderCacheControl, ListCacheControl)
	return c.JSON(page)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.InvalidID)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorJSON(c, fiber.StatusNotFound, i18n.ProductNotFound)
		}
		logError(c, "getting product", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.FetchFailed)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product. The id is always assigned by the store.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.InvalidBody)
	}

	created, err := h.service.CreateProduct(c.UserContext(), product)
	if err != nil {
		if handled, resp := validationJSON(c, err); handled {
			return resp
		}
		logError(c, "creating product", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.SaveFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct merges the submitted fields into an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.InvalidID)
	}

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.InvalidBody)
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		if handled, resp := validationJSON(c, err); handled {
			return resp
		}
		if errors.Is(err, services.ErrProductNotFound) {
			return errorJSON(c, fiber.StatusNotFound, i18n.ProductNotFound)
		}
		logError(c, "updating product", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.UpdateFailed)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct removes a product and echoes it back.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.InvalidID)
	}

	removed, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorJSON(c, fiber.StatusNotFound, i18n.ProductNotFound)
		}
		logError(c, "deleting product", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.DeleteFailed)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"removed": removed,
	})
}

func productID(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("id"))
}
