// filepath: internal/repository/tag_repo.go
package repository

import (
	"database/sql"
	"fmt"

	"blogapp/internal/logging"
	"blogapp/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
)

// GetOrCreateTag looks a tag up by exact name, inserting it if absent. A
// concurrent caller may insert the same name between our lookup and insert;
// the UNIQUE violation from the losing insert is rolled back and answered
// with a fresh read of the winning row instead of being propagated.
func (s *Repository) GetOrCreateTag(name string) (int64, error) {
	if id, ok := s.tagCache.Get(name); ok {
		return id.(int64), nil
	}

	id, err := s.findTagID(name)
	if err == nil {
		s.tagCache.Set(name, id, cache.NoExpiration)
		return id, nil
	}
	if err != sql.ErrNoRows {
		logging.Log.Errorf("GetOrCreateTag(%q) lookup failed: %v", name, err)
		return 0, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO tags (name) VALUES (?)", name)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			// Lost the race; the winner's row holds the id now.
			id, err := s.findTagID(name)
			if err != nil {
				logging.Log.Errorf("GetOrCreateTag(%q) re-read after race failed: %v", name, err)
				return 0, err
			}
			s.tagCache.Set(name, id, cache.NoExpiration)
			return id, nil
		}
		logging.Log.Errorf("GetOrCreateTag(%q) insert failed: %v", name, err)
		return 0, err
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.tagCache.Set(name, id, cache.NoExpiration)
	return id, nil
}

func (s *Repository) findTagID(name string) (int64, error) {
	var id int64
	err := s.DB.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	return id, err
}

// LinkTag associates a tag with a post. Linking an already-linked pair is a
// success; referencing a nonexistent post or tag is a failure.
func (s *Repository) LinkTag(postID, tagID int64) bool {
	_, err := s.DB.Exec("INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)", postID, tagID)
	if err != nil {
		if isUniqueViolation(err) {
			return true // already linked
		}
		if isForeignKeyViolation(err) {
			logging.Log.Warnf("LinkTag(%d, %d): no such post or tag", postID, tagID)
			return false
		}
		logging.Log.Errorf("LinkTag(%d, %d) failed: %v", postID, tagID, err)
		return false
	}
	return true
}

// UnlinkAll removes every tag association for a post. Used on edit, where the
// link-set is replaced wholesale rather than diffed.
func (s *Repository) UnlinkAll(postID int64) bool {
	if _, err := s.DB.Exec("DELETE FROM post_tags WHERE post_id = ?", postID); err != nil {
		logging.Log.Errorf("UnlinkAll(%d) failed: %v", postID, err)
		return false
	}
	return true
}

// TagsForPost retrieves a post's tags ordered by name.
func (s *Repository) TagsForPost(postID int64) ([]models.Tag, error) {
	query := s.Builder.
		Select("t.id", "t.name").
		From("tags t").
		Join("post_tags pt ON pt.tag_id = t.id").
		Where(squirrel.Eq{"pt.post_id": postID}).
		OrderBy("t.name ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build tag query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("TagsForPost(%d) failed: %v", postID, err)
		return nil, err
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// PostsForTag retrieves all posts carrying the named tag, newest first. An
// unknown tag yields an empty list, not an error.
func (s *Repository) PostsForTag(name string) ([]models.Post, error) {
	query := s.Builder.
		Select("p.id", "p.title", "p.content", "p.published_date", "p.image_filename").
		From("posts p").
		Join("post_tags pt ON pt.post_id = p.id").
		Join("tags t ON t.id = pt.tag_id").
		Where(squirrel.Eq{"t.name": name}).
		OrderBy("p.published_date DESC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build posts-for-tag query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		logging.Log.Errorf("PostsForTag(%q) failed: %v", name, err)
		return nil, err
	}
	defer rows.Close()

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
