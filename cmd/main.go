package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/Irfan430/rest-api/internal/db"
	"github.com/Irfan430/rest-api/internal/handlers"
	"github.com/Irfan430/rest-api/internal/middleware"
	"github.com/Irfan430/rest-api/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	// Initialize Fiber with the centralized error formatter
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Initialize MinIO
	storage.InitMinio()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Get MongoDB URI from environment
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/blog_api" // Default fallback
	}
	mongoDBName := os.Getenv("MONGO_DB")
	if mongoDBName == "" {
		mongoDBName = "blog_api"
	}

	// Connect to MongoDB
	mongoDB := db.ConnectMongoDB(mongoURI, mongoDBName)

	handlers.InitAdminHandler(mongoDB)

	api := app.Group("/api/v1")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterHandler)
	auth.Post("/login", handlers.LoginHandler)
	auth.Get("/me", middleware.RequireAuth, handlers.MeHandler)

	// Admin Routes
	admin := api.Group("/admin", middleware.RequireAuth, middleware.RequireAdmin)
	admin.Get("/users", handlers.ListUsers)
	admin.Get("/users/:id", handlers.GetUserByID)
	admin.Put("/users/:id/active", handlers.SetUserActive)
	admin.Get("/posts", handlers.ListAllPosts)

	// Post Routes
	posts := api.Group("/posts")
	posts.Get("/", middleware.OptionalAuth, handlers.ListPostsHandler)
	posts.Get("/my/posts", middleware.RequireAuth, handlers.MyPostsHandler)
	posts.Get("/category/:category", middleware.OptionalAuth, handlers.CategoryPostsHandler)
	posts.Post("/", middleware.RequireAuth, middleware.ValidatePost, handlers.CreatePostHandler)
	posts.Get("/:id", middleware.OptionalAuth, handlers.GetPostHandler)
	posts.Put("/:id", middleware.RequireAuth, middleware.ValidatePostUpdate, handlers.UpdatePostHandler)
	posts.Delete("/:id", middleware.RequireAuth, handlers.DeletePostHandler)
	posts.Put("/:id/like", middleware.RequireAuth, handlers.ToggleLikeHandler)
	posts.Put("/:id/cover", middleware.RequireAuth, handlers.UploadCoverHandler)
	posts.Post("/:id/comments", middleware.RequireAuth, middleware.ValidateComment, handlers.AddCommentHandler)
	posts.Delete("/:id/comments/:commentId", middleware.RequireAuth, handlers.DeleteCommentHandler)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	// Start server
	log.Fatal(app.Listen(":" + port))
}
