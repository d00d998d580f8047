package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Irfan430/rest-api/internal/models"
	"github.com/Irfan430/rest-api/internal/services"
)

var userCollection *mongo.Collection

// Initialize MongoDB collections
func InitAdminHandler(db *mongo.Database) {
	userCollection = db.Collection("users")
}

// List all users
func ListUsers(c *fiber.Ctx) error {
	cursor, err := userCollection.Find(c.Context(), bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(c.Context())

	users := make([]models.User, 0)
	if err := cursor.All(c.Context(), &users); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

// Get user details by ID
func GetUserByID(c *fiber.Ctx) error {
	user, err := services.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// SetUserActive flips the active flag on an account.
func SetUserActive(c *fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	var request struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := userCollection.UpdateOne(c.Context(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"active": request.Active, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
	})
}

// ListAllPosts lists posts in every status with the usual listing machinery.
func ListAllPosts(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	params.Status = c.Query("status")

	posts, total, pagination, err := services.ListPosts(c.Context(), params)
	if err != nil {
		return err
	}
	return renderListing(c, posts, total, pagination)
}
