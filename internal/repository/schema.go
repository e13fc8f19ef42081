// filepath: internal/repository/schema.go
package repository

import (
	"fmt"
	"os"

	"blogapp/internal/logging"
	"blogapp/internal/shared"
)

// InitSchema reads the SQL script at path and executes it as one batch inside
// a transaction. The script declares its tables with CREATE TABLE IF NOT
// EXISTS, so re-running against an initialized store keeps existing data; no
// drop-first step is added here.
func (s *Repository) InitSchema(path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Log.Errorf("Schema file not found at: %s", path)
			return fmt.Errorf("%s: %w", path, shared.ErrSchemaFileMissing)
		}
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSchemaExecution, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(script)); err != nil {
		logging.Log.Errorf("Database initialization failed: %v", err)
		return fmt.Errorf("%w: %v", shared.ErrSchemaExecution, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSchemaExecution, err)
	}

	logging.Log.Info("Database initialized successfully.")
	return nil
}
