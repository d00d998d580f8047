package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/notfound", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusForbidden, "Not allowed to modify this post")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("mongo: connection reset")
	})
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorHandlerKeepsFiberErrorStatus(t *testing.T) {
	app := errorTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notfound", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Post not found", body["message"])
}

func TestErrorHandlerForbiddenIsNot401(t *testing.T) {
	app := errorTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := errorTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Something went wrong", body["message"])
	assert.NotContains(t, body["message"], "mongo")
}
