package middleware

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/i18n"
)

// LanguageKey is the Locals key holding the response language.
const LanguageKey = "lang"

// Language selects the message language: the "lang" query parameter wins,
// then the Accept-Language header, then Turkish.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := i18n.Default
		if q := c.Query("lang"); q != "" && i18n.Supported(q) {
			lang = i18n.Normalize(q)
		} else if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
			lang = i18n.FromAcceptLanguage(header)
		}
		c.Locals(LanguageKey, lang)
		c.Set(fiber.HeaderContentLanguage, lang)
		return c.Next()
	}
}

// Lang returns the language chosen by Language, or the default.
func Lang(c *fiber.Ctx) string {
	if lang, ok := c.Locals(LanguageKey).(string); ok {
		return lang
	}
	return i18n.Default
}
