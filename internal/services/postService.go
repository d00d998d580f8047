package services

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Irfan430/rest-api/internal/db"
	"github.com/Irfan430/rest-api/internal/models"
)

const postsCollection = "posts"

// ListPosts executes a filter/sort/paginate query and returns the page of
// posts, the total matching the filter, and the pagination descriptor.
func ListPosts(ctx context.Context, p ListParams) ([]models.Post, int64, Pagination, error) {
	collection := db.GetCollection(postsCollection)
	filter := BuildFilter(p)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, Pagination{}, err
	}

	findOpts := options.Find().
		SetSort(SortSpec(p.SortBy)).
		SetSkip(int64(StartIndex(p.Page, p.Limit))).
		SetLimit(int64(p.Limit))

	cursor, err := collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, Pagination{}, err
	}
	defer cursor.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, Pagination{}, err
	}

	return posts, total, BuildPagination(p.Page, p.Limit, total), nil
}

// findPost loads a post by hex id; missing and malformed ids are both NotFound.
func findPost(ctx context.Context, postID string) (models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	var post models.Post
	err = db.GetCollection(postsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}
	return post, nil
}

// VisibleTo reports whether a post may be seen by the given viewer. Anything
// not published is visible to its author only; everyone else gets NotFound so
// the post's existence stays hidden.
func VisibleTo(post models.Post, viewerID string) bool {
	if post.Status == models.StatusPublished {
		return true
	}
	return viewerID != "" && post.Author.Hex() == viewerID
}

// CanModifyPost reports whether the caller may update or delete a post.
func CanModifyPost(userID, role string, post models.Post) bool {
	return post.Author.Hex() == userID || role == models.RoleAdmin
}

// CanDeleteComment reports whether the caller may remove a comment: the
// comment's author, the post's author, or an admin.
func CanDeleteComment(userID, role string, post models.Post, comment models.Comment) bool {
	return comment.User.Hex() == userID || post.Author.Hex() == userID || role == models.RoleAdmin
}

// HasLiked reports whether the user already appears in the like list.
func HasLiked(likes []models.Like, userID primitive.ObjectID) bool {
	for _, like := range likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

// FindComment locates a comment by id within a post's comment sequence.
func FindComment(comments []models.Comment, commentID string) (models.Comment, bool) {
	for _, comment := range comments {
		if comment.ID == commentID {
			return comment, true
		}
	}
	return models.Comment{}, false
}

// GetPost returns a single post, applying the visibility rule and atomically
// incrementing the view counter on every successful fetch.
func GetPost(ctx context.Context, postID, viewerID string) (models.Post, error) {
	post, err := findPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	if !VisibleTo(post, viewerID) {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	_, err = db.GetCollection(postsCollection).UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	if err != nil {
		return models.Post{}, err
	}
	post.ViewCount++

	return post, nil
}

// CreatePost persists a new post. The author is always the authenticated
// caller, never anything from the payload.
func CreatePost(ctx context.Context, authorID string, input models.PostInput) (models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return models.Post{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     input.Title,
		Content:   input.Content,
		Excerpt:   input.Excerpt,
		Category:  input.Category,
		Tags:      tags,
		Status:    status,
		Author:    objID,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.GetCollection(postsCollection).InsertOne(ctx, post)
	return post, err
}

// UpdatePost applies a partial update after the ownership check. Only fields
// present in the input are replaced; author, counters, likes and comments are
// never touched here.
func UpdatePost(ctx context.Context, postID, userID, role string, input models.PostUpdateInput) (models.Post, error) {
	post, err := findPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	if !CanModifyPost(userID, role, post) {
		return models.Post{}, fiber.NewError(fiber.StatusForbidden, "Not allowed to modify this post")
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}
	if input.Excerpt != nil {
		set["excerpt"] = *input.Excerpt
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Tags != nil {
		set["tags"] = *input.Tags
	}
	if input.Status != nil {
		set["status"] = *input.Status
	}

	var updated models.Post
	err = db.GetCollection(postsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return models.Post{}, err
	}

	return updated, nil
}

// DeletePost removes a post after the ownership check.
func DeletePost(ctx context.Context, postID, userID, role string) error {
	post, err := findPost(ctx, postID)
	if err != nil {
		return err
	}

	if !CanModifyPost(userID, role, post) {
		return fiber.NewError(fiber.StatusForbidden, "Not allowed to delete this post")
	}

	_, err = db.GetCollection(postsCollection).DeleteOne(ctx, bson.M{"_id": post.ID})
	return err
}

// ToggleLike flips the caller's like on a post. The membership precondition is
// re-asserted inside the update filter, so two concurrent toggles by the same
// user cannot double-apply.
func ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	post, err := findPost(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	if !VisibleTo(post, userID) {
		return false, 0, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	collection := db.GetCollection(postsCollection)

	if HasLiked(post.Likes, userObjID) {
		res, err := collection.UpdateOne(ctx,
			bson.M{"_id": post.ID, "likes.user": userObjID},
			bson.M{
				"$pull": bson.M{"likes": bson.M{"user": userObjID}},
				"$inc":  bson.M{"like_count": -1},
			},
		)
		if err != nil {
			return false, 0, err
		}
		if res.ModifiedCount == 0 {
			// A concurrent toggle got there first; report current state
			return likeState(ctx, post.ID, userObjID)
		}
		return false, post.LikeCount - 1, nil
	}

	like := models.Like{User: userObjID, CreatedAt: time.Now()}
	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": post.ID, "likes.user": bson.M{"$ne": userObjID}},
		bson.M{
			"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}},
			"$inc":  bson.M{"like_count": 1},
		},
	)
	if err != nil {
		return false, 0, err
	}
	if res.ModifiedCount == 0 {
		return likeState(ctx, post.ID, userObjID)
	}
	return true, post.LikeCount + 1, nil
}

func likeState(ctx context.Context, postID primitive.ObjectID, userID primitive.ObjectID) (bool, int, error) {
	var post models.Post
	err := db.GetCollection(postsCollection).FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		return false, 0, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}
	return HasLiked(post.Likes, userID), post.LikeCount, nil
}

// AddComment prepends a new comment to the post's comment sequence and
// returns it populated with the commenter's display name.
func AddComment(ctx context.Context, postID, userID string, input models.CommentInput) (models.Comment, error) {
	post, err := findPost(ctx, postID)
	if err != nil {
		return models.Comment{}, err
	}
	if !VisibleTo(post, userID) {
		return models.Comment{}, fiber.NewError(fiber.StatusNotFound, "Post not found")
	}

	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return models.Comment{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		User:      user.ID,
		UserName:  user.Name,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	_, err = db.GetCollection(postsCollection).UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}}},
	)
	if err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

// DeleteComment removes one comment by id. Allowed for the comment's author,
// the post's author, or an admin. Removal pulls by comment id, so a
// concurrent delete of a neighboring comment cannot shift the target.
func DeleteComment(ctx context.Context, postID, commentID, userID, role string) error {
	post, err := findPost(ctx, postID)
	if err != nil {
		return err
	}

	comment, found := FindComment(post.Comments, commentID)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Comment not found")
	}

	if !CanDeleteComment(userID, role, post, comment) {
		return fiber.NewError(fiber.StatusForbidden, "Not allowed to delete this comment")
	}

	_, err = db.GetCollection(postsCollection).UpdateOne(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
	)
	return err
}

// AuthorizePostModify runs the ownership check without mutating anything.
// Used before side effects that happen outside the document store.
func AuthorizePostModify(ctx context.Context, postID, userID, role string) error {
	post, err := findPost(ctx, postID)
	if err != nil {
		return err
	}
	if !CanModifyPost(userID, role, post) {
		return fiber.NewError(fiber.StatusForbidden, "Not allowed to modify this post")
	}
	return nil
}

// SetCoverURL stores the uploaded cover image URL after the ownership check.
func SetCoverURL(ctx context.Context, postID, userID, role, url string) (models.Post, error) {
	post, err := findPost(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}

	if !CanModifyPost(userID, role, post) {
		return models.Post{}, fiber.NewError(fiber.StatusForbidden, "Not allowed to modify this post")
	}

	var updated models.Post
	err = db.GetCollection(postsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": post.ID},
		bson.M{"$set": bson.M{"cover_url": url, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return models.Post{}, err
	}
	return updated, nil
}
