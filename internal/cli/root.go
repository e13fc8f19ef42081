// filepath: internal/cli/root.go
// Package cli contains the cobra commands for the blog binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "blogapp",
	Short: "A small personal blog",
	Long:  `A personal blogging web application with posts, tags, comments and image uploads.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	registerFlags(RootCmd)

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
