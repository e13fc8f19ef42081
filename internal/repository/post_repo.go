// filepath: internal/repository/post_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"blogapp/internal/logging"
	"blogapp/internal/models"
	"blogapp/internal/shared"

	"github.com/Masterminds/squirrel"
)

// PostOrder is the closed set of orderings accepted by ListPosts. Raw ORDER BY
// fragments never travel in from callers; unknown tokens map to the default.
type PostOrder int

const (
	OrderNewestFirst PostOrder = iota
	OrderOldestFirst
	OrderTitleAsc
	OrderTitleDesc
)

// orderClauses maps each PostOrder onto its literal ORDER BY clause.
var orderClauses = map[PostOrder]string{
	OrderNewestFirst: "published_date DESC",
	OrderOldestFirst: "published_date ASC",
	OrderTitleAsc:    "title ASC",
	OrderTitleDesc:   "title DESC",
}

// ParsePostOrder maps an untrusted token onto a PostOrder, falling back to
// newest-first for anything it does not recognize.
func ParsePostOrder(token string) PostOrder {
	switch token {
	case "oldest":
		return OrderOldestFirst
	case "title":
		return OrderTitleAsc
	case "title_desc":
		return OrderTitleDesc
	default:
		return OrderNewestFirst
	}
}

func (o PostOrder) clause() string {
	if c, ok := orderClauses[o]; ok {
		return c
	}
	return orderClauses[OrderNewestFirst]
}

// ListPosts retrieves all posts with their tags attached.
func (s *Repository) ListPosts(order PostOrder) ([]models.Post, error) {
	query := s.Builder.
		Select("id", "title", "content", "published_date", "image_filename").
		From("posts").
		OrderBy(order.clause())

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post list query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("ListPosts query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty blog renders as an empty list, not null.
	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves a single post by id, tags included. Returns (nil, nil)
// when the id does not exist.
func (s *Repository) GetPost(id int64) (*models.Post, error) {
	row := s.DB.QueryRow(
		"SELECT id, title, content, published_date, image_filename FROM posts WHERE id = ?", id)

	var post models.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.PublishedDate, &post.ImageFilename)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logging.Log.Errorf("GetPost(%d) failed: %v", id, err)
		return nil, err
	}

	tags, err := s.TagsForPost(post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return &post, nil
}

// CreatePost inserts a new post and returns its generated id. The image
// filename, when present, must already have been placed under the static root
// by the image store; this layer only records the string.
func (s *Repository) CreatePost(title, content string, imageFilename *string) (int64, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		logging.Log.Errorf("CreatePost: failed to start transaction: %v", err)
		return 0, shared.ErrDbWrite
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO posts (title, content, published_date, image_filename) VALUES (?, ?, ?, ?)",
		title, content, time.Now().UTC(), imageFilename,
	)
	if err != nil {
		logging.Log.Errorf("CreatePost insert failed: %v", err)
		return 0, shared.ErrDbWrite
	}

	id, err := res.LastInsertId()
	if err != nil {
		logging.Log.Errorf("CreatePost: failed to read generated id: %v", err)
		return 0, shared.ErrDbWrite
	}

	if err := tx.Commit(); err != nil {
		logging.Log.Errorf("CreatePost commit failed: %v", err)
		return 0, shared.ErrDbWrite
	}
	return id, nil
}

// UpdatePost updates title and content, and the image column only when
// applyImageChange is set. "No new image uploaded" and "image explicitly
// cleared" must stay distinguishable, hence the two-mode contract. Returns
// whether a row was affected (false means the id did not exist).
func (s *Repository) UpdatePost(id int64, title, content string, imageFilename *string, applyImageChange bool) (bool, error) {
	update := s.Builder.Update("posts").
		Set("title", title).
		Set("content", content).
		Where(squirrel.Eq{"id": id})
	if applyImageChange {
		update = update.Set("image_filename", imageFilename)
	}

	sqlQuery, args, err := update.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build post update: %w", err)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		logging.Log.Errorf("UpdatePost: failed to start transaction: %v", err)
		return false, shared.ErrDbWrite
	}
	defer tx.Rollback()

	res, err := tx.Exec(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("UpdatePost(%d) failed: %v", id, err)
		return false, shared.ErrDbWrite
	}
	affected, err := res.RowsAffected()
	if err != nil {
		logging.Log.Errorf("UpdatePost(%d): failed to read affected rows: %v", id, err)
		return false, shared.ErrDbWrite
	}

	if err := tx.Commit(); err != nil {
		logging.Log.Errorf("UpdatePost commit failed: %v", err)
		return false, shared.ErrDbWrite
	}
	return affected > 0, nil
}

// DeletePost removes a post row. Comments and tag links go with it via the
// ON DELETE CASCADE constraints; any image file cleanup is the caller's job.
// Returns false when the id did not exist.
func (s *Repository) DeletePost(id int64) (bool, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		logging.Log.Errorf("DeletePost: failed to start transaction: %v", err)
		return false, shared.ErrDbWrite
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		logging.Log.Errorf("DeletePost(%d) failed: %v", id, err)
		return false, shared.ErrDbWrite
	}
	affected, err := res.RowsAffected()
	if err != nil {
		logging.Log.Errorf("DeletePost(%d): failed to read affected rows: %v", id, err)
		return false, shared.ErrDbWrite
	}

	if err := tx.Commit(); err != nil {
		logging.Log.Errorf("DeletePost commit failed: %v", err)
		return false, shared.ErrDbWrite
	}
	return affected > 0, nil
}

// scanPost scans the canonical post column set from a rows cursor.
func scanPost(rows *sql.Rows) (*models.Post, error) {
	var post models.Post
	if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.PublishedDate, &post.ImageFilename); err != nil {
		return nil, err
	}
	return &post, nil
}

// attachTags fills in the Tags slice for every post in one query.
func (s *Repository) attachTags(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	index := make(map[int64]*models.Post, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = &posts[i]
	}

	query := s.Builder.
		Select("pt.post_id", "t.id", "t.name").
		From("post_tags pt").
		Join("tags t ON t.id = pt.tag_id").
		Where(squirrel.Eq{"pt.post_id": ids}).
		OrderBy("t.name ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build tag attach query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("attachTags query failed: %v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var tag models.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Name); err != nil {
			return err
		}
		if p, ok := index[postID]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}
	return rows.Err()
}
