package config

import (
	"fmt"
	"os"
	"strconv"

	"teampulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Host    string
	Port    int
	User    string
	Name    string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// ExportConfig holds analytics export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	db, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}

	return &Config{
		Database: *db,
		Server: ServerConfig{
			Port: envOr("SERVER_PORT", "8080"),
		},
		Export: ExportConfig{
			Dir: envOr("EXPORT_DIR", "exports"),
		},
	}, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		Host:    envOr("DB_HOST", "localhost"),
		User:    envOr("DB_USER", "teampulse"),
		Name:    envOr("DB_NAME", "teampulse"),
		SSLMode: envOr("DB_SSLMODE", "disable"),
	}

	port := envOr("DB_PORT", "5432")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
	}
	cfg.Port = p

	if cfg.URL == "" {
		cfg.URL = fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.SSLMode)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
