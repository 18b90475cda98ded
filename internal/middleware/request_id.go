package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the Locals key holding the request id.
const RequestIDKey = "request_id"

// RequestID propagates the X-Request-ID header, generating a UUID when the
// client did not send one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(RequestIDKey, rid)
		c.Set(fiber.HeaderXRequestID, rid)
		return c.Next()
	}
}
