package config

import "fmt"

// CatalogConfig tunes the catalog listing behavior and the mock catalog
// used when no database is configured.
type CatalogConfig struct {
	ItemsPerPage int   `koanf:"itemsPerPage"`
	MockSeed     int64 `koanf:"mockSeed"`
}

func (c *CatalogConfig) Validate() error {
	if c.ItemsPerPage < 0 {
		return fmt.Errorf("invalid catalog itemsPerPage: %d", c.ItemsPerPage)
	}
	return nil
}
