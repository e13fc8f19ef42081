// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strconv"

	"blogapp/internal/config"
	"blogapp/internal/logging"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flag variables
	cfgFile    string
	logLevel   string
	host       string
	port       int
	dbPath     string
	staticRoot string
)

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: BLOG_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: BLOG_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: BLOG_DATABASE_PATH)")

	// Server-specific flags
	cmd.Flags().StringVar(&host, "host", "", "Address for the HTTP server to bind to. (Env: BLOG_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: BLOG_PORT)")
	cmd.Flags().StringVar(&staticRoot, "static-root", "", "Directory served under /static. (Env: BLOG_STATIC_ROOT)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("BLOG_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply overrides (env vars, then CLI flags)
	applyOverrides(cfg)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize logging
	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

func applyOverrides(c *config.Config) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment variables ---
	if v := getEnv("BLOG_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnv("BLOG_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("BLOG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("BLOG_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("BLOG_SCHEMA_PATH"); v != "" {
		c.Database.SchemaPath = v
	}
	if v := getEnv("BLOG_STATIC_ROOT"); v != "" {
		c.Database.StaticRoot = v
	}
	if v := getEnv("BLOG_UPLOAD_DIR"); v != "" {
		c.Database.UploadDir = v
	}

	// --- CLI flags ---
	if host != "" {
		c.Server.Host = host
	}
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if staticRoot != "" {
		c.Database.StaticRoot = staticRoot
	}
}
