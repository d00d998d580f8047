package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Irfan430/rest-api/internal/models"
)

func TestVisibleTo(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	published := models.Post{Status: models.StatusPublished, Author: author}
	draft := models.Post{Status: models.StatusDraft, Author: author}
	archived := models.Post{Status: models.StatusArchived, Author: author}

	assert.True(t, VisibleTo(published, ""))
	assert.True(t, VisibleTo(published, stranger.Hex()))

	assert.True(t, VisibleTo(draft, author.Hex()))
	assert.False(t, VisibleTo(draft, stranger.Hex()))
	assert.False(t, VisibleTo(draft, ""))

	assert.False(t, VisibleTo(archived, stranger.Hex()))
	assert.True(t, VisibleTo(archived, author.Hex()))
}

func TestCanModifyPost(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	post := models.Post{Author: author}

	assert.True(t, CanModifyPost(author.Hex(), models.RoleUser, post))
	assert.True(t, CanModifyPost(stranger.Hex(), models.RoleAdmin, post))
	assert.False(t, CanModifyPost(stranger.Hex(), models.RoleUser, post))
	assert.False(t, CanModifyPost("", "", post))
}

func TestCanDeleteComment(t *testing.T) {
	postAuthor := primitive.NewObjectID()
	commenter := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	post := models.Post{Author: postAuthor}
	comment := models.Comment{ID: "c1", User: commenter}

	assert.True(t, CanDeleteComment(commenter.Hex(), models.RoleUser, post, comment))
	assert.True(t, CanDeleteComment(postAuthor.Hex(), models.RoleUser, post, comment))
	assert.True(t, CanDeleteComment(stranger.Hex(), models.RoleAdmin, post, comment))
	assert.False(t, CanDeleteComment(stranger.Hex(), models.RoleUser, post, comment))
}

func TestHasLiked(t *testing.T) {
	liker := primitive.NewObjectID()
	other := primitive.NewObjectID()
	likes := []models.Like{
		{User: liker, CreatedAt: time.Now()},
	}

	assert.True(t, HasLiked(likes, liker))
	assert.False(t, HasLiked(likes, other))
	assert.False(t, HasLiked(nil, liker))
}

func TestFindComment(t *testing.T) {
	comments := []models.Comment{
		{ID: "a", Content: "first"},
		{ID: "b", Content: "second"},
	}

	comment, found := FindComment(comments, "b")
	assert.True(t, found)
	assert.Equal(t, "second", comment.Content)

	_, found = FindComment(comments, "missing")
	assert.False(t, found)

	_, found = FindComment(nil, "a")
	assert.False(t, found)
}
