package services

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Irfan430/rest-api/internal/db"
	"github.com/Irfan430/rest-api/internal/models"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a JWT token with user ID and role
func GenerateJWT(userID string, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 4).Unix(), // Token expires in 4 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// RegisterUser creates a new account. The role is always "user"; admins are
// promoted out of band.
func RegisterUser(ctx context.Context, name, email, password string) (models.User, error) {
	collection := db.GetCollection("users")

	// Check if user already exists
	var existingUser models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&existingUser)
	if err == nil {
		return models.User{}, fiber.NewError(fiber.StatusBadRequest, "Email already in use")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = collection.InsertOne(ctx, user)
	return user, err
}

// LoginUser authenticates a user and returns a JWT with role info
func LoginUser(ctx context.Context, email, password string) (string, models.User, error) {
	collection := db.GetCollection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return "", models.User{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !VerifyPassword(password, user.Password) {
		return "", models.User{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !user.Active {
		return "", models.User{}, fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", models.User{}, err
	}

	return token, user, nil
}

// GetUserByID loads a user record by its hex id.
func GetUserByID(ctx context.Context, userID string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	var user models.User
	err = db.GetCollection("users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		return models.User{}, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return user, nil
}
