package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOEmbed(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.VaultDir == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vaultindex/config.toml"
		}
		return fmt.Errorf("paths.vault_dir is required. Set VAULTINDEX_VAULT_DIR, pass --vault, or edit %s (create with 'vaultindex config init')", defaultPath)
	}
	if c.Paths.OutputPath == c.Paths.CachePath {
		return errors.New("paths.output_path and paths.cache_path must differ")
	}
	return nil
}

func (c *Config) validateOEmbed() error {
	if !c.OEmbed.Enabled {
		return nil
	}
	parsed, err := url.Parse(c.OEmbed.BaseURL)
	if err != nil {
		return fmt.Errorf("oembed.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("oembed.base_url must be an http(s) URL, got %q", c.OEmbed.BaseURL)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if strings.Count(c.Index.ThumbnailURLTemplate, "%s") != 1 {
		return errors.New("index.thumbnail_url_template must contain exactly one %s placeholder")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
