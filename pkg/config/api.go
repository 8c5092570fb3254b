package config

import (
	"fmt"
	"strings"
	"time"
)

// APIConfig holds the connection settings for the storefront REST API.
type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the API configuration.
func (c *APIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  base_url: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base url is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("api timeout is not configured")
	}
	return nil
}
