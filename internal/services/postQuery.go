package services

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams is the filter/sort/pagination specification built from the
// query string. An empty field contributes no filter.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Tags     string
	Search   string
	Author   string
	Status   string
	SortBy   string
}

// PageCursor points at an adjacent page in a listing.
type PageCursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the next/prev descriptor returned alongside a listing page.
type Pagination struct {
	Next *PageCursor `json:"next,omitempty"`
	Prev *PageCursor `json:"prev,omitempty"`
}

// ParsePageParam parses a page/limit query value permissively: anything that
// is not a positive integer falls back to the default rather than erroring.
func ParsePageParam(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// BuildFilter translates list parameters into a single bson filter document.
// Every parameter contributes an independent condition and conditions are
// ANDed, except search which ORs title and content internally.
func BuildFilter(p ListParams) bson.M {
	filter := bson.M{}

	if p.Status != "" {
		filter["status"] = p.Status
	}

	if p.Category != "" {
		filter["category"] = primitive.Regex{Pattern: p.Category, Options: "i"}
	}

	if p.Tags != "" {
		tags := make([]string, 0)
		for _, tag := range strings.Split(p.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		filter["tags"] = bson.M{"$in": tags}
	}

	if p.Search != "" {
		regex := primitive.Regex{Pattern: p.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"content": regex},
		}
	}

	if p.Author != "" {
		objID, err := primitive.ObjectIDFromHex(p.Author)
		if err != nil {
			// Malformed author ids match nothing instead of failing the request
			objID = primitive.NilObjectID
		}
		filter["author"] = objID
	}

	return filter
}

// SortSpec maps the sortBy parameter onto a mongo sort document.
func SortSpec(sortBy string) bson.D {
	switch sortBy {
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	case "popular":
		return bson.D{{Key: "view_count", Value: -1}}
	case "mostLiked":
		return bson.D{{Key: "like_count", Value: -1}}
	case "title":
		return bson.D{{Key: "title", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// StartIndex returns the number of documents to skip for a page.
func StartIndex(page, limit int) int {
	return (page - 1) * limit
}

// BuildPagination computes the next/prev cursors for a listing page.
func BuildPagination(page, limit int, total int64) Pagination {
	startIndex := StartIndex(page, limit)

	var pg Pagination
	if int64(startIndex+limit) < total {
		pg.Next = &PageCursor{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		pg.Prev = &PageCursor{Page: page - 1, Limit: limit}
	}
	return pg
}
