package config

import (
	"fmt"
	"strings"
)

// LogConfig selects the level of the storefront's JSON logs.
type LogConfig struct {
	Level string `koanf:"level"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	return b.String()
}

func (c *LogConfig) Validate() error {
	// An empty or unknown level degrades to info at bootstrap instead of
	// failing startup.
	return nil
}
