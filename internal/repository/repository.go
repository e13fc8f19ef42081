// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"blogapp/internal/config"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite" // SQLite driver
)

// Repository provides access to the blog's relational store. One Repository is
// created at startup and shared; database/sql serializes access to the
// underlying sqlite handle.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType

	// tagCache memoizes tag name -> id. Tags are never renamed or deleted,
	// so cached entries cannot go stale.
	tagCache *cache.Cache
}

// NewRepository opens the sqlite database referenced by the configuration.
func NewRepository(cfg *config.Config) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.Database.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Database.Path, err)
	}

	return &Repository{
		DB:       db,
		Builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		tagCache: cache.New(cache.NoExpiration, 10*time.Minute),
	}, nil
}

// Close releases the database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
// The driver exposes no typed constraint errors, so match on the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a sqlite FOREIGN KEY failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
