package docstore

import (
	"fmt"
	"os"
	"time"
)

// Driver names a document store backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverMongo    Driver = "mongo"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Env maps environment variable names for document store configuration.
type Env struct {
	Driver      string
	URI         string
	Database    string
	ConnTimeout string
}

// Config selects and configures the document store backend.
// URI is a MongoDB connection string, a PostgreSQL DSN or a SQLite path
// depending on Driver.
type Config struct {
	Driver      Driver `toml:"driver"`
	URI         string `toml:"uri"`
	Database    string `toml:"database"`
	MaxPoolSize int    `toml:"max_pool_size"`
	ConnTimeout string `toml:"conn_timeout"`
}

// ConnTimeoutDuration parses and returns the connection timeout.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.URI != "" {
		c.URI = overlay.URI
	}
	if overlay.Database != "" {
		c.Database = overlay.Database
	}
	if overlay.MaxPoolSize != 0 {
		c.MaxPoolSize = overlay.MaxPoolSize
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Database == "" {
		c.Database = "catalog"
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 50
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Driver != "" {
		if v := os.Getenv(env.Driver); v != "" {
			c.Driver = Driver(v)
		}
	}
	if env.URI != "" {
		if v := os.Getenv(env.URI); v != "" {
			c.URI = v
		}
	}
	if env.Database != "" {
		if v := os.Getenv(env.Database); v != "" {
			c.Database = v
		}
	}
	if env.ConnTimeout != "" {
		if v := os.Getenv(env.ConnTimeout); v != "" {
			c.ConnTimeout = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverMemory:
	case DriverMongo, DriverPostgres, DriverSQLite:
		if c.URI == "" {
			return fmt.Errorf("uri required for driver %s", c.Driver)
		}
	default:
		return fmt.Errorf("invalid driver: %s (must be memory, mongo, postgres, or sqlite)", c.Driver)
	}
	if c.MaxPoolSize < 1 {
		return fmt.Errorf("max_pool_size must be positive")
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	return nil
}
