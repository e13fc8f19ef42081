// filepath: internal/repository/comment_repo.go
package repository

import (
	"time"

	"blogapp/internal/logging"
	"blogapp/internal/models"
	"blogapp/internal/shared"
)

// CommentsForPost retrieves a post's comments oldest-first, chronological
// reading order.
func (s *Repository) CommentsForPost(postID int64) ([]models.Comment, error) {
	rows, err := s.DB.Query(
		"SELECT id, post_id, author, content, published_date FROM comments WHERE post_id = ? ORDER BY published_date ASC, id ASC",
		postID,
	)
	if err != nil {
		logging.Log.Errorf("CommentsForPost(%d) failed: %v", postID, err)
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.PublishedDate); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddComment inserts a visitor comment. Non-empty validation happens at the
// handler; this layer only rejects what the store rejects (e.g. a missing
// post via the foreign key).
func (s *Repository) AddComment(postID int64, author, content string) (int64, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		logging.Log.Errorf("AddComment: failed to start transaction: %v", err)
		return 0, shared.ErrDbWrite
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO comments (post_id, author, content, published_date) VALUES (?, ?, ?, ?)",
		postID, author, content, time.Now().UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			logging.Log.Warnf("AddComment: post %d does not exist", postID)
			return 0, shared.ErrPostNotFound
		}
		logging.Log.Errorf("AddComment insert failed: %v", err)
		return 0, shared.ErrDbWrite
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, shared.ErrDbWrite
	}
	if err := tx.Commit(); err != nil {
		logging.Log.Errorf("AddComment commit failed: %v", err)
		return 0, shared.ErrDbWrite
	}
	return id, nil
}
