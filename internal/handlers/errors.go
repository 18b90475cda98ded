package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"katalog/internal/i18n"
	"katalog/internal/middleware"
)

// fieldMessages maps a JSON field and a failing validation tag to a message
// key. The empty tag is the fallback for the field.
var fieldMessages = map[string]map[string]string{
	"name":        {"": i18n.NameError},
	"brand":       {"": i18n.BrandError},
	"model":       {"": i18n.ModelError},
	"color":       {"": i18n.ColorError},
	"category":    {"": i18n.CategoryError},
	"price":       {"": i18n.PriceError, "lte": i18n.PriceMaxError},
	"stock":       {"": i18n.StockError, "lte": i18n.StockMaxError},
	"description": {"": i18n.DescriptionError},
	"image":       {"": i18n.ImageError},
}

func errorJSON(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": i18n.T(middleware.Lang(c), key),
	})
}

// validationJSON answers 400 with one localised message per invalid field.
// It reports false when err is not a validation failure.
func validationJSON(c *fiber.Ctx, err error) (bool, error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, nil
	}

	lang := middleware.Lang(c)
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := i18n.FieldInvalid
		if byTag, ok := fieldMessages[fe.Field()]; ok {
			if k, ok := byTag[fe.Tag()]; ok {
				key = k
			} else {
				key = byTag[""]
			}
		}
		fields[fe.Field()] = i18n.T(lang, key)
	}
	return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  i18n.T(lang, i18n.ValidationFailed),
		"errors": fields,
	})
}

func logError(c *fiber.Ctx, action string, err error) {
	log.Printf("[%v] Error %s: %v", c.Locals(middleware.RequestIDKey), action, err)
}
