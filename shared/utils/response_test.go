package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/forbidden", func(c *fiber.Ctx) error { return ForbiddenResponse(c, "forbidden access") })
	app.Get("/conflict", func(c *fiber.Ctx) error { return ConflictResponse(c, "taken") })
	app.Get("/failed", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error", errors.New("disk full"))
	})

	tests := []struct {
		path    string
		status  int
		message string
		err     string
	}{
		{"/forbidden", fiber.StatusForbidden, "forbidden access", ""},
		{"/conflict", fiber.StatusConflict, "taken", ""},
		{"/failed", fiber.StatusInternalServerError, "Internal Server Error", "disk full"},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
		require.NoError(t, err)

		var body Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
		assert.False(t, body.Success)
		assert.Equal(t, tt.message, body.Message)
		assert.Equal(t, tt.err, body.Error)
	}
}
