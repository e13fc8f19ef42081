// filepath: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the database and file-storage configuration.
type DatabaseConfig struct {
	Path       string `toml:"path"`
	SchemaPath string `toml:"schema_path"`
	StaticRoot string `toml:"static_root"`
	UploadDir  string `toml:"upload_dir"` // relative to StaticRoot
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParseAndValidate fills in defaults and rejects values that can never work.
func (c *Config) ParseAndValidate() error {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		c.Database.Path = "blog.db"
	}
	if c.Database.SchemaPath == "" {
		c.Database.SchemaPath = "schema.sql"
	}
	if c.Database.StaticRoot == "" {
		c.Database.StaticRoot = "static"
	}
	if c.Database.UploadDir == "" {
		c.Database.UploadDir = "uploads"
	}
	// The upload dir is joined below the static root; an absolute value or a
	// parent reference would escape it.
	if strings.HasPrefix(c.Database.UploadDir, "/") || strings.Contains(c.Database.UploadDir, "..") {
		return fmt.Errorf("invalid upload_dir: %s", c.Database.UploadDir)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
