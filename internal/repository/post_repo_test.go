// filepath: internal/repository/post_repo_test.go
package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateAndGetPost(t *testing.T) {
	repo := setupTestDB(t)

	id, err := repo.CreatePost("Hello", "World", nil)
	assert.NoError(t, err)
	assert.NotZero(t, id)

	post, err := repo.GetPost(id)
	assert.NoError(t, err)
	if assert.NotNil(t, post) {
		assert.Equal(t, "Hello", post.Title)
		assert.Equal(t, "World", post.Content)
		assert.False(t, post.PublishedDate.IsZero(), "published date must be generated")
		assert.Nil(t, post.ImageFilename)
		assert.Empty(t, post.Tags)
	}
}

func TestGetPost_Absent(t *testing.T) {
	repo := setupTestDB(t)

	post, err := repo.GetPost(99999)
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestCreatePost_WithImage(t *testing.T) {
	repo := setupTestDB(t)

	id, err := repo.CreatePost("Pic", "Body", strPtr("uploads/abc123.png"))
	assert.NoError(t, err)

	post, err := repo.GetPost(id)
	assert.NoError(t, err)
	if assert.NotNil(t, post.ImageFilename) {
		assert.Equal(t, "uploads/abc123.png", *post.ImageFilename)
	}
}

func TestListPosts_Ordering(t *testing.T) {
	repo := setupTestDB(t)

	// Insert with explicit, distinct timestamps so ordering is deterministic.
	stmts := []struct {
		title string
		date  time.Time
	}{
		{"Banana", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"Apple", time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)},
		{"Cherry", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, s := range stmts {
		_, err := repo.DB.Exec(
			"INSERT INTO posts (title, content, published_date) VALUES (?, ?, ?)", s.title, "c", s.date)
		assert.NoError(t, err)
	}

	titles := func(order PostOrder) []string {
		posts, err := repo.ListPosts(order)
		assert.NoError(t, err)
		out := make([]string, len(posts))
		for i, p := range posts {
			out[i] = p.Title
		}
		return out
	}

	assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, titles(OrderNewestFirst))
	assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, titles(OrderOldestFirst))
	assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, titles(OrderTitleAsc))
	assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, titles(OrderTitleDesc))
}

func TestParsePostOrder_FallsBack(t *testing.T) {
	assert.Equal(t, OrderOldestFirst, ParsePostOrder("oldest"))
	assert.Equal(t, OrderTitleAsc, ParsePostOrder("title"))
	assert.Equal(t, OrderTitleDesc, ParsePostOrder("title_desc"))

	// Anything unknown, including injection attempts, falls back silently.
	for _, token := range []string{"", "newest", "id; DROP TABLE posts;--", "published_date ASC"} {
		assert.Equal(t, OrderNewestFirst, ParsePostOrder(token))
	}
}

func TestListPosts_IncludesTags(t *testing.T) {
	repo := setupTestDB(t)

	id, err := repo.CreatePost("Tagged", "Body", nil)
	assert.NoError(t, err)

	for _, name := range []string{"travel", "norway"} {
		tagID, err := repo.GetOrCreateTag(name)
		assert.NoError(t, err)
		assert.True(t, repo.LinkTag(id, tagID))
	}

	posts, err := repo.ListPosts(OrderNewestFirst)
	assert.NoError(t, err)
	if assert.Len(t, posts, 1) {
		names := []string{}
		for _, tag := range posts[0].Tags {
			names = append(names, tag.Name)
		}
		assert.Equal(t, []string{"norway", "travel"}, names, "tags ordered by name")
	}
}

func TestUpdatePost(t *testing.T) {
	repo := setupTestDB(t)

	id, err := repo.CreatePost("Old Title", "Old Content", strPtr("uploads/old.png"))
	assert.NoError(t, err)

	t.Run("Text Only Leaves Image Alone", func(t *testing.T) {
		// Even a non-nil filename must not touch the column without the flag.
		ok, err := repo.UpdatePost(id, "New Title", "New Content", strPtr("uploads/sneaky.png"), false)
		assert.NoError(t, err)
		assert.True(t, ok)

		post, err := repo.GetPost(id)
		assert.NoError(t, err)
		assert.Equal(t, "New Title", post.Title)
		assert.Equal(t, "New Content", post.Content)
		if assert.NotNil(t, post.ImageFilename) {
			assert.Equal(t, "uploads/old.png", *post.ImageFilename)
		}
	})

	t.Run("Apply Image Change Replaces", func(t *testing.T) {
		ok, err := repo.UpdatePost(id, "New Title", "New Content", strPtr("uploads/new.png"), true)
		assert.NoError(t, err)
		assert.True(t, ok)

		post, err := repo.GetPost(id)
		assert.NoError(t, err)
		if assert.NotNil(t, post.ImageFilename) {
			assert.Equal(t, "uploads/new.png", *post.ImageFilename)
		}
	})

	t.Run("Apply Image Change Clears", func(t *testing.T) {
		ok, err := repo.UpdatePost(id, "New Title", "New Content", nil, true)
		assert.NoError(t, err)
		assert.True(t, ok)

		post, err := repo.GetPost(id)
		assert.NoError(t, err)
		assert.Nil(t, post.ImageFilename)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		ok, err := repo.UpdatePost(99999, "T", "C", nil, false)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeletePost_Cascades(t *testing.T) {
	repo := setupTestDB(t)

	id, err := repo.CreatePost("Doomed", "Body", nil)
	assert.NoError(t, err)

	tagID, err := repo.GetOrCreateTag("gone")
	assert.NoError(t, err)
	assert.True(t, repo.LinkTag(id, tagID))
	_, err = repo.AddComment(id, "A", "first")
	assert.NoError(t, err)

	ok, err := repo.DeletePost(id)
	assert.NoError(t, err)
	assert.True(t, ok)

	post, err := repo.GetPost(id)
	assert.NoError(t, err)
	assert.Nil(t, post)

	comments, err := repo.CommentsForPost(id)
	assert.NoError(t, err)
	assert.Empty(t, comments)

	tags, err := repo.TagsForPost(id)
	assert.NoError(t, err)
	assert.Empty(t, tags)

	// Orphaned tag rows persist; that is observed, accepted behavior.
	var count int
	assert.NoError(t, repo.DB.QueryRow("SELECT COUNT(*) FROM tags WHERE name = 'gone'").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDeletePost_UnknownId(t *testing.T) {
	repo := setupTestDB(t)

	ok, err := repo.DeletePost(12345)
	assert.NoError(t, err)
	assert.False(t, ok)
}
