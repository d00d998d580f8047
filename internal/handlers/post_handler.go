package handlers

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"

	"github.com/Irfan430/rest-api/internal/middleware"
	"github.com/Irfan430/rest-api/internal/models"
	"github.com/Irfan430/rest-api/internal/services"
	"github.com/Irfan430/rest-api/internal/storage"
)

// listParamsFromQuery builds the listing specification from the query string.
// Page and limit parse permissively and fall back to 1/10.
func listParamsFromQuery(c *fiber.Ctx) services.ListParams {
	return services.ListParams{
		Page:     services.ParsePageParam(c.Query("page"), 1),
		Limit:    services.ParsePageParam(c.Query("limit"), 10),
		Category: c.Query("category"),
		Tags:     c.Query("tags"),
		Search:   c.Query("search"),
		Author:   c.Query("author"),
		SortBy:   c.Query("sortBy"),
	}
}

func renderListing(c *fiber.Ctx, posts []models.Post, total int64, pagination services.Pagination) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(posts),
		"total":      total,
		"pagination": pagination,
		"posts":      posts,
	})
}

// ListPostsHandler serves the public listing; only published posts show up.
func ListPostsHandler(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	params.Status = models.StatusPublished

	posts, total, pagination, err := services.ListPosts(c.Context(), params)
	if err != nil {
		return err
	}
	return renderListing(c, posts, total, pagination)
}

// MyPostsHandler lists the caller's own posts in every status. An explicit
// status query narrows it, drafts included.
func MyPostsHandler(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	params.Author = middleware.UserID(c)
	params.Status = c.Query("status")

	posts, total, pagination, err := services.ListPosts(c.Context(), params)
	if err != nil {
		return err
	}
	return renderListing(c, posts, total, pagination)
}

// CategoryPostsHandler lists published posts for the path-specified category.
func CategoryPostsHandler(c *fiber.Ctx) error {
	params := listParamsFromQuery(c)
	params.Status = models.StatusPublished
	params.Category = c.Params("category")

	posts, total, pagination, err := services.ListPosts(c.Context(), params)
	if err != nil {
		return err
	}
	return renderListing(c, posts, total, pagination)
}

func GetPostHandler(c *fiber.Ctx) error {
	post, err := services.GetPost(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

func CreatePostHandler(c *fiber.Ctx) error {
	input, _ := c.Locals(middleware.PostInputKey).(models.PostInput)

	post, err := services.CreatePost(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Post created successfully",
		"post":    post,
	})
}

func UpdatePostHandler(c *fiber.Ctx) error {
	input, _ := c.Locals(middleware.PostUpdateInputKey).(models.PostUpdateInput)

	post, err := services.UpdatePost(c.Context(), c.Params("id"), middleware.UserID(c), middleware.Role(c), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post updated successfully",
		"post":    post,
	})
}

func DeletePostHandler(c *fiber.Ctx) error {
	err := services.DeletePost(c.Context(), c.Params("id"), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post deleted successfully",
	})
}

func ToggleLikeHandler(c *fiber.Ctx) error {
	liked, likeCount, err := services.ToggleLike(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"liked":     liked,
		"likeCount": likeCount,
	})
}

func AddCommentHandler(c *fiber.Ctx) error {
	input, _ := c.Locals(middleware.CommentInputKey).(models.CommentInput)

	comment, err := services.AddComment(c.Context(), c.Params("id"), middleware.UserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

func DeleteCommentHandler(c *fiber.Ctx) error {
	err := services.DeleteComment(c.Context(), c.Params("id"), c.Params("commentId"),
		middleware.UserID(c), middleware.Role(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}

// UploadCoverHandler stores a cover image in MinIO and records its URL on the
// post. Owner or admin only.
func UploadCoverHandler(c *fiber.Ctx) error {
	// Ownership check runs before the object upload
	if err := services.AuthorizePostModify(c.Context(), c.Params("id"),
		middleware.UserID(c), middleware.Role(c)); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to retrieve image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to open image")
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read image")
	}

	objectName := fmt.Sprintf("%s_%s", c.Params("id"), fileHeader.Filename)
	_, err = storage.MinioClient.PutObject(
		c.Context(),
		storage.MediaBucket,
		objectName,
		bytes.NewReader(fileBytes),
		int64(len(fileBytes)),
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")},
	)
	if err != nil {
		return fmt.Errorf("failed to upload cover image: %w", err)
	}

	post, err := services.SetCoverURL(c.Context(), c.Params("id"),
		middleware.UserID(c), middleware.Role(c), storage.ObjectURL(objectName))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cover image uploaded",
		"post":    post,
	})
}
