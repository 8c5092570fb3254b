package config

import (
	"strings"

	"github.com/MhasnainGIT/e-commerce/pkg/config"
	"github.com/MhasnainGIT/e-commerce/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// Config is the storefront client configuration.
type Config struct {
	API     config.APIConfig     `koanf:"api"`
	Storage config.StorageConfig `koanf:"storage"`
	Log     config.LogConfig     `koanf:"log"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.API.String())
	b.WriteString(c.Storage.String())
	b.WriteString(c.Log.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
