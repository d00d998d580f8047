package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParsePageParam(t *testing.T) {
	assert.Equal(t, 1, ParsePageParam("", 1))
	assert.Equal(t, 10, ParsePageParam("abc", 10))
	assert.Equal(t, 1, ParsePageParam("0", 1))
	assert.Equal(t, 1, ParsePageParam("-3", 1))
	assert.Equal(t, 7, ParsePageParam("7", 7))
	assert.Equal(t, 5, ParsePageParam(" 5 ", 1))
}

func TestBuildFilterEmpty(t *testing.T) {
	filter := BuildFilter(ListParams{})
	assert.Empty(t, filter)
}

func TestBuildFilterStatus(t *testing.T) {
	filter := BuildFilter(ListParams{Status: "published"})
	assert.Equal(t, "published", filter["status"])
}

func TestBuildFilterCategoryIsCaseInsensitiveRegex(t *testing.T) {
	filter := BuildFilter(ListParams{Category: "Tech"})
	regex, ok := filter["category"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "Tech", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestBuildFilterTagsSplitAndTrimmed(t *testing.T) {
	filter := BuildFilter(ListParams{Tags: "go, web ,,api"})
	in, ok := filter["tags"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"go", "web", "api"}, in["$in"])
}

func TestBuildFilterSearchOrsTitleAndContent(t *testing.T) {
	filter := BuildFilter(ListParams{Search: "fiber"})
	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	title := or[0].(bson.M)["title"].(primitive.Regex)
	content := or[1].(bson.M)["content"].(primitive.Regex)
	assert.Equal(t, "fiber", title.Pattern)
	assert.Equal(t, "i", title.Options)
	assert.Equal(t, "fiber", content.Pattern)
	assert.Equal(t, "i", content.Options)
}

func TestBuildFilterAuthorExactMatch(t *testing.T) {
	authorID := primitive.NewObjectID()
	filter := BuildFilter(ListParams{Author: authorID.Hex()})
	assert.Equal(t, authorID, filter["author"])
}

func TestBuildFilterMalformedAuthorMatchesNothing(t *testing.T) {
	filter := BuildFilter(ListParams{Author: "not-a-hex-id"})
	assert.Equal(t, primitive.NilObjectID, filter["author"])
}

func TestBuildFilterConditionsAreAnded(t *testing.T) {
	authorID := primitive.NewObjectID()
	filter := BuildFilter(ListParams{
		Status:   "published",
		Category: "tech",
		Tags:     "go",
		Search:   "mongo",
		Author:   authorID.Hex(),
	})

	// One top-level key per condition: all merged into a single document
	assert.Len(t, filter, 5)
	assert.Contains(t, filter, "status")
	assert.Contains(t, filter, "category")
	assert.Contains(t, filter, "tags")
	assert.Contains(t, filter, "$or")
	assert.Contains(t, filter, "author")
}

func TestSortSpec(t *testing.T) {
	cases := []struct {
		sortBy string
		key    string
		order  int
	}{
		{"oldest", "created_at", 1},
		{"popular", "view_count", -1},
		{"mostLiked", "like_count", -1},
		{"title", "title", 1},
		{"", "created_at", -1},
		{"bogus", "created_at", -1},
	}

	for _, tc := range cases {
		spec := SortSpec(tc.sortBy)
		require.Len(t, spec, 1, "sortBy=%q", tc.sortBy)
		assert.Equal(t, tc.key, spec[0].Key, "sortBy=%q", tc.sortBy)
		assert.Equal(t, tc.order, spec[0].Value, "sortBy=%q", tc.sortBy)
	}
}

func TestStartIndex(t *testing.T) {
	assert.Equal(t, 0, StartIndex(1, 10))
	assert.Equal(t, 10, StartIndex(2, 10))
	assert.Equal(t, 50, StartIndex(11, 5))
}

func TestBuildPaginationFirstPage(t *testing.T) {
	pg := BuildPagination(1, 10, 25)
	require.NotNil(t, pg.Next)
	assert.Equal(t, PageCursor{Page: 2, Limit: 10}, *pg.Next)
	assert.Nil(t, pg.Prev)
}

func TestBuildPaginationMiddlePage(t *testing.T) {
	pg := BuildPagination(2, 10, 25)
	require.NotNil(t, pg.Next)
	assert.Equal(t, PageCursor{Page: 3, Limit: 10}, *pg.Next)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, PageCursor{Page: 1, Limit: 10}, *pg.Prev)
}

func TestBuildPaginationLastPage(t *testing.T) {
	pg := BuildPagination(3, 10, 25)
	assert.Nil(t, pg.Next)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, PageCursor{Page: 2, Limit: 10}, *pg.Prev)
}

func TestBuildPaginationExactBoundary(t *testing.T) {
	// startIndex+limit == total leaves nothing after this page
	pg := BuildPagination(2, 10, 20)
	assert.Nil(t, pg.Next)
	require.NotNil(t, pg.Prev)
}

func TestBuildPaginationEmptyResult(t *testing.T) {
	pg := BuildPagination(1, 10, 0)
	assert.Nil(t, pg.Next)
	assert.Nil(t, pg.Prev)
}
