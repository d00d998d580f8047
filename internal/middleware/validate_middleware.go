package middleware

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Irfan430/rest-api/internal/models"
)

var validate = validator.New()

// Locals keys under which validated payloads are stored for the handlers.
const (
	PostInputKey       = "post_input"
	PostUpdateInputKey = "post_update_input"
	CommentInputKey    = "comment_input"
)

func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Field '%s' failed validation on '%s'", fe.Field(), fe.Tag()))
	}
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
}

// ValidatePost parses and validates a post creation payload before the handler runs.
func ValidatePost(c *fiber.Ctx) error {
	var input models.PostInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(err)
	}
	c.Locals(PostInputKey, input)
	return c.Next()
}

// ValidatePostUpdate parses and validates a partial post update payload.
func ValidatePostUpdate(c *fiber.Ctx) error {
	var input models.PostUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(err)
	}
	c.Locals(PostUpdateInputKey, input)
	return c.Next()
}

// ValidateComment parses and validates a comment payload.
func ValidateComment(c *fiber.Ctx) error {
	var input models.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return validationError(err)
	}
	c.Locals(CommentInputKey, input)
	return c.Next()
}
