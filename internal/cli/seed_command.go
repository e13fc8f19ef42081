// filepath: internal/cli/seed_command.go
package cli

import (
	"fmt"

	"blogapp/internal/repository"
	"blogapp/internal/services"
	"blogapp/internal/storage"

	"github.com/spf13/cobra"
)

var seedCount int

// seedDBCmd fills the database with sample posts for local development.
var seedDBCmd = &cobra.Command{
	Use:   "seed-db",
	Short: "Insert sample posts into the database",
	Long:  `Inserts a handful of sample posts with tags so a fresh install has something to look at.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := repository.NewRepository(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer repo.Close()

		images := storage.NewImageStore(cfg.Database.StaticRoot, cfg.Database.UploadDir)
		seeder := services.NewSeedService(services.NewPostService(repo, images))

		inserted, err := seeder.Seed(seedCount)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		fmt.Printf("Inserted %d sample posts.\n", inserted)
		return nil
	},
}

func init() {
	seedDBCmd.Flags().IntVar(&seedCount, "posts", services.AvailableSamples(), "Number of sample posts to insert")
	RootCmd.AddCommand(seedDBCmd)
}
