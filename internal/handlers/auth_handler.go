package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Irfan430/rest-api/internal/middleware"
	"github.com/Irfan430/rest-api/internal/services"
)

func RegisterHandler(c *fiber.Ctx) error {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if request.Name == "" || request.Email == "" || len(request.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "Name, email and a password of at least 6 characters are required")
	}

	user, err := services.RegisterUser(c.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

func LoginHandler(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	token, user, err := services.LoginUser(c.Context(), request.Email, request.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// MeHandler returns the authenticated caller's profile.
func MeHandler(c *fiber.Ctx) error {
	user, err := services.GetUserByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
