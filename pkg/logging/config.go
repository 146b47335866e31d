package logging

import (
	"errors"
	"os"
)

// Env names the environment variables that override Config. Empty names are
// skipped.
type Env struct {
	Level  string
	Format string
}

// Config is the [logging] section.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize fills defaults, applies env overrides and reports every invalid
// value at once.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	if env != nil {
		if v := lookup(env.Level); v != "" {
			c.Level = Level(v)
		}
		if v := lookup(env.Format); v != "" {
			c.Format = Format(v)
		}
	}

	return errors.Join(c.Level.Validate(), c.Format.Validate())
}

// Merge lets a non-empty overlay value win.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
