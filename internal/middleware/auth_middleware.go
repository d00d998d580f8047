package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Irfan430/rest-api/internal/models"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// parseToken validates a bearer token and returns the user id and role claims.
func parseToken(tokenString string) (string, string, bool) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		return "", "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}

	userID, userExists := claims["user_id"].(string)
	role, roleExists := claims["role"].(string)
	if !userExists || !roleExists {
		return "", "", false
	}

	return userID, role, true
}

// RequireAuth validates the JWT token and stores the caller identity in context
func RequireAuth(c *fiber.Ctx) error {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	userID, role, ok := parseToken(tokenString)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	// Store user info in context for next handlers
	c.Locals("user_id", userID)
	c.Locals("role", role)

	return c.Next()
}

// OptionalAuth attaches the caller identity when a valid token is present,
// and lets the request through anonymously otherwise.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString := c.Get("Authorization")
	if tokenString != "" {
		if userID, role, ok := parseToken(tokenString); ok {
			c.Locals("user_id", userID)
			c.Locals("role", role)
		}
	}
	return c.Next()
}

// RequireAdmin ensures that only users with "admin" role pass. Must run after RequireAuth.
func RequireAdmin(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Access denied. Admins only.")
	}
	return c.Next()
}

// UserID returns the authenticated user id from context, empty when anonymous.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// Role returns the authenticated role from context, empty when anonymous.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
