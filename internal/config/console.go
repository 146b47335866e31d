package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/catalog-console/pkg/openapi"
)

const EnvConsoleOperationTimeout = "CONSOLE_OPERATION_TIMEOUT"

// ConsoleConfig tunes the screen view-models.
type ConsoleConfig struct {
	// OperationTimeout bounds every store and asset call made by a screen.
	OperationTimeout string `toml:"operation_timeout"`
}

func (c *ConsoleConfig) OperationTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OperationTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the console configuration.
func (c *ConsoleConfig) Finalize() error {
	if c.OperationTimeout == "" {
		c.OperationTimeout = "15s"
	}
	if v := os.Getenv(EnvConsoleOperationTimeout); v != "" {
		c.OperationTimeout = v
	}

	d, err := time.ParseDuration(c.OperationTimeout)
	if err != nil {
		return fmt.Errorf("invalid operation_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("operation_timeout must be positive")
	}
	return nil
}

func (c *ConsoleConfig) Merge(overlay *ConsoleConfig) {
	if overlay.OperationTimeout != "" {
		c.OperationTimeout = overlay.OperationTimeout
	}
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

// APIConfig contains the HTTP API mount point and its published document metadata.
type APIConfig struct {
	BasePath string         `toml:"base_path"`
	OpenAPI  openapi.Config `toml:"openapi"`
}

func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv("API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
