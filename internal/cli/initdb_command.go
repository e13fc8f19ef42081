// filepath: internal/cli/initdb_command.go
package cli

import (
	"fmt"

	"blogapp/internal/repository"

	"github.com/spf13/cobra"
)

var schemaPath string

// initDBCmd applies the schema file to the configured database.
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database tables from the schema file",
	Long:  `Applies the SQL schema to the configured database. Safe to run repeatedly; existing tables and data are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repository.NewRepository(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer repo.Close()

		path := cfg.Database.SchemaPath
		if schemaPath != "" {
			path = schemaPath
		}
		if err := repo.InitSchema(path); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}

		fmt.Printf("Initialized the database at %s.\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	initDBCmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the SQL schema file (defaults to the configured schema_path)")
	RootCmd.AddCommand(initDBCmd)
}
