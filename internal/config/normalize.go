package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDocuments()
	c.normalizeOEmbed()
	c.normalizeIndex()
	c.normalizeChannels()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.VaultDir) == "" {
		c.Paths.VaultDir = strings.TrimSpace(os.Getenv("VAULTINDEX_VAULT_DIR"))
	}
	if strings.TrimSpace(c.Paths.OutputPath) == "" {
		c.Paths.OutputPath = defaultOutputPath
	}
	if strings.TrimSpace(c.Paths.CachePath) == "" {
		c.Paths.CachePath = defaultCachePath
	}

	var err error
	if c.Paths.VaultDir, err = expandPath(strings.TrimSpace(c.Paths.VaultDir)); err != nil {
		return fmt.Errorf("paths.vault_dir: %w", err)
	}
	if c.Paths.OutputPath, err = expandPath(strings.TrimSpace(c.Paths.OutputPath)); err != nil {
		return fmt.Errorf("paths.output_path: %w", err)
	}
	if c.Paths.CachePath, err = expandPath(strings.TrimSpace(c.Paths.CachePath)); err != nil {
		return fmt.Errorf("paths.cache_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockPath) == "" {
		c.Paths.LockPath = c.Paths.CachePath + lockFileSuffix
	}
	if c.Paths.LockPath, err = expandPath(strings.TrimSpace(c.Paths.LockPath)); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDocuments() {
	ext := strings.ToLower(strings.TrimSpace(c.Documents.Extension))
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Documents.Extension = ext
}

func (c *Config) normalizeOEmbed() {
	c.OEmbed.BaseURL = strings.TrimSpace(c.OEmbed.BaseURL)
	if c.OEmbed.BaseURL == "" {
		c.OEmbed.BaseURL = defaultOEmbedBaseURL
	}
	if c.OEmbed.TimeoutSeconds <= 0 {
		c.OEmbed.TimeoutSeconds = defaultOEmbedTimeout
	}
}

func (c *Config) normalizeIndex() {
	c.Index.ThumbnailURLTemplate = strings.TrimSpace(c.Index.ThumbnailURLTemplate)
	if c.Index.ThumbnailURLTemplate == "" {
		c.Index.ThumbnailURLTemplate = defaultThumbnailTemplate
	}
	c.Index.DefaultColor = strings.TrimSpace(c.Index.DefaultColor)
	if c.Index.DefaultColor == "" {
		c.Index.DefaultColor = defaultChannelColor
	}
}

// normalizeChannels lowercases channel keys and languages so lookups match
// the normalized item keys.
func (c *Config) normalizeChannels() {
	if len(c.Channels) == 0 {
		c.Channels = BuiltinChannels()
	}
	channels := make(map[string]Channel, len(c.Channels))
	for key, ch := range c.Channels {
		locales := make(map[string]ChannelLocale, len(ch.Locales))
		for lang, locale := range ch.Locales {
			locales[strings.ToLower(strings.TrimSpace(lang))] = locale
		}
		ch.Color = strings.TrimSpace(ch.Color)
		ch.Locales = locales
		channels[strings.ToLower(strings.TrimSpace(key))] = ch
	}
	c.Channels = channels

	names := make(map[string]map[string]string, len(c.ChannelNames))
	for key, byLang := range c.ChannelNames {
		normalized := make(map[string]string, len(byLang))
		for lang, name := range byLang {
			normalized[strings.ToLower(strings.TrimSpace(lang))] = name
		}
		names[strings.ToLower(strings.TrimSpace(key))] = normalized
	}
	c.ChannelNames = names
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
