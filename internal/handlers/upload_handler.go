package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/i18n"
	"katalog/internal/services"
)

// UploadHandler accepts product images.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers POST /upload on router.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload stores the multipart field "file" and returns its public URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, i18n.FileMissing)
	}

	url, err := h.service.Store(fh)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"url": url})
	case errors.Is(err, services.ErrMissingFile):
		return errorJSON(c, fiber.StatusBadRequest, i18n.FileMissing)
	case errors.Is(err, services.ErrUnsupportedFileType):
		return errorJSON(c, fiber.StatusBadRequest, i18n.FileUnsupported)
	case errors.Is(err, services.ErrFileTooLarge):
		return errorJSON(c, fiber.StatusBadRequest, i18n.FileTooLarge)
	default:
		logError(c, "storing upload", err)
		return errorJSON(c, fiber.StatusInternalServerError, i18n.UploadFailed)
	}
}
