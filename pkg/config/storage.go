package config

import (
	"fmt"
	"strings"
)

// StorageConfig holds the location of the embedded cart database.
// An empty path means no durable storage; the cart lives only in memory.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	path := c.Path
	if path == "" {
		path = "<in-memory>"
	}
	b.WriteString(fmt.Sprintf("  path: %s\n", path))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	return nil
}
