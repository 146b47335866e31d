package openapi

import "os"

const (
	defaultTitle       = "Catalog Console API"
	defaultDescription = "Administrative console for catalog categories, products and customers."
)

// Config is the [api.openapi] section: the title and description placed in
// the document's info block.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize never fails; it returns an error to match the other config sections.
func (c *Config) Finalize(env *ConfigEnv) error {
	fields := c.fields()
	for i := range fields {
		if *fields[i].dst == "" {
			*fields[i].dst = fields[i].def
		}
	}
	if env == nil {
		return nil
	}

	for i, name := range []string{env.Title, env.Description} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*fields[i].dst = v
		}
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

type configField struct {
	dst *string
	def string
}

func (c *Config) fields() []configField {
	return []configField{
		{&c.Title, defaultTitle},
		{&c.Description, defaultDescription},
	}
}
