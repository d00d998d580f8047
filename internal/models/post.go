package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Excerpt   string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Category  string             `bson:"category" json:"category"`
	Tags      []string           `bson:"tags" json:"tags"`
	Status    string             `bson:"status" json:"status"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CoverURL  string             `bson:"cover_url,omitempty" json:"cover_url,omitempty"`
	Likes     []Like             `bson:"likes" json:"likes"`
	LikeCount int                `bson:"like_count" json:"like_count"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	ViewCount int                `bson:"view_count" json:"view_count"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Like is embedded in a Post. A user appears at most once per post.
type Like struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Comment is embedded in a Post, addressed by its own id.
type Comment struct {
	ID        string             `bson:"id" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	UserName  string             `bson:"user_name" json:"user_name"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PostInput is the payload accepted when creating a post.
type PostInput struct {
	Title    string   `json:"title" validate:"required,min=3,max=120"`
	Content  string   `json:"content" validate:"required,min=10"`
	Excerpt  string   `json:"excerpt" validate:"omitempty,max=300"`
	Category string   `json:"category" validate:"required,min=2,max=50"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// PostUpdateInput carries partial updates; nil fields are left untouched.
type PostUpdateInput struct {
	Title    *string   `json:"title" validate:"omitempty,min=3,max=120"`
	Content  *string   `json:"content" validate:"omitempty,min=10"`
	Excerpt  *string   `json:"excerpt" validate:"omitempty,max=300"`
	Category *string   `json:"category" validate:"omitempty,min=2,max=50"`
	Tags     *[]string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Status   *string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// CommentInput is the payload accepted when commenting on a post.
type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
