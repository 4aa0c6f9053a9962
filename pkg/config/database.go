package config

import (
	"fmt"
	"strings"
	"time"
)

// DatabaseConfig describes the catalog database connection. An empty URL
// is valid and switches the service to the in-memory mock catalog.
type DatabaseConfig struct {
	URL      string        `koanf:"url"`
	MaxConns int32         `koanf:"maxConns"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return nil
	}
	if !isValidPostgresURL(c.URL) {
		return fmt.Errorf("database URL must start with 'postgres://': %s", c.URL)
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("invalid database maxConns: %d", c.MaxConns)
	}
	return nil
}

// Enabled reports whether a database is configured at all.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// isValidPostgresURL checks if the provided URL is a valid PostgreSQL URL
func isValidPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}
