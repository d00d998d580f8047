package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the centralized error formatter installed on the app.
// Known fiber errors keep their status and message; anything else becomes a
// generic 500 so store failures never leak details to clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
