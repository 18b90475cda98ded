package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/middleware"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestID(), middleware.Language())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"rid":  c.Locals(middleware.RequestIDKey),
			"lang": middleware.Lang(c),
		})
	})
	return app
}

func TestRequestID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestLanguage(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		header   string
		expected string
	}{
		{"default", "/", "", "tr"},
		{"header", "/", "en-GB,en;q=0.8", "en"},
		{"query wins", "/?lang=tr", "en", "tr"},
		{"unsupported query falls back to header", "/?lang=de", "en", "en"},
		{"unsupported everything", "/?lang=de", "fr", "tr"},
	}

	app := newTestApp()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAcceptLanguage, tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.expected, resp.Header.Get(fiber.HeaderContentLanguage))
		})
	}
}
