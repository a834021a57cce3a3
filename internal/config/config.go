package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output, and state file locations.
type Paths struct {
	VaultDir   string `toml:"vault_dir"`
	OutputPath string `toml:"output_path"`
	CachePath  string `toml:"cache_path"`
	LockPath   string `toml:"lock_path"`
	LogDir     string `toml:"log_dir"`
}

// Documents controls which vault files are read and whether promotions are
// written back into their headers.
type Documents struct {
	Extension  string `toml:"extension"`
	SkipHidden bool   `toml:"skip_hidden"`
	WriteBack  bool   `toml:"write_back"`
}

// OEmbed contains configuration for playlist title lookups.
type OEmbed struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Index contains output shaping settings.
type Index struct {
	ThumbnailURLTemplate string `toml:"thumbnail_url_template"`
	DefaultColor         string `toml:"default_color"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// ChannelLocale is the per-language display text of a channel.
type ChannelLocale struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Channel describes the static display metadata of one channel key.
type Channel struct {
	Color   string                   `toml:"color"`
	Locales map[string]ChannelLocale `toml:"locales"`
}

// Config encapsulates all configuration values for vaultindex.
//
// Configuration sections:
//   - Paths: vault root, index output, title cache, run lock, logs
//   - Documents: extension filter, hidden directory handling, write-back
//   - OEmbed: external playlist title lookup
//   - Index: thumbnail template and fallback channel color
//   - Logging: log format and level
//   - Channels: per-channel color and localized title/description
//   - ChannelNames: per-channel, per-language display name overrides
type Config struct {
	Paths        Paths                        `toml:"paths"`
	Documents    Documents                    `toml:"documents"`
	OEmbed       OEmbed                       `toml:"oembed"`
	Index        Index                        `toml:"index"`
	Logging      Logging                      `toml:"logging"`
	Channels     map[string]Channel           `toml:"channels"`
	ChannelNames map[string]map[string]string `toml:"channel_names"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vaultindex/config.toml")
}

// Override adjusts a decoded config before it is normalized and validated.
type Override func(*Config)

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	for _, override := range overrides {
		if override != nil {
			override(&cfg)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vaultindex.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the parent directories of every file the
// generator writes. The vault itself is never created.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Paths.OutputPath),
		filepath.Dir(c.Paths.CachePath),
		filepath.Dir(c.Paths.LockPath),
	}
	if c.Paths.LogDir != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// OEmbedTimeout returns the HTTP timeout for title lookups.
func (c *Config) OEmbedTimeout() time.Duration {
	return time.Duration(c.OEmbed.TimeoutSeconds) * time.Second
}

// ChannelLocale returns the static display text and color for a channel in
// the given language. ok is false when the channel has no entry for lang.
func (c *Config) ChannelLocale(key, lang string) (ChannelLocale, string, bool) {
	ch, found := c.Channels[key]
	if !found {
		return ChannelLocale{}, "", false
	}
	locale, found := ch.Locales[lang]
	return locale, ch.Color, found
}

// ChannelNameOverride returns the display name override for a channel in
// the given language, if one is configured.
func (c *Config) ChannelNameOverride(key, lang string) (string, bool) {
	name := strings.TrimSpace(c.ChannelNames[key][lang])
	return name, name != ""
}

// ExpandPath expands a leading tilde and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
