package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vaultindex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The vault directory exists; output and cache files do not. Title lookups
// are disabled unless WithOEmbed is given.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.VaultDir = filepath.Join(base, "vault")
	cfgVal.Paths.OutputPath = filepath.Join(base, "site", "assets", "data", "content.json")
	cfgVal.Paths.CachePath = filepath.Join(base, "site", "assets", "data", "playlist_cache.json")
	cfgVal.Paths.LockPath = cfgVal.Paths.CachePath + ".lock"
	cfgVal.OEmbed.Enabled = false
	cfgVal.Channels = config.BuiltinChannels()
	cfgVal.ChannelNames = map[string]map[string]string{}

	if err := os.MkdirAll(cfgVal.Paths.VaultDir, 0o755); err != nil {
		t.Fatalf("mkdir vault: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOEmbed enables title lookups against baseURL.
func WithOEmbed(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OEmbed.Enabled = true
		b.cfg.OEmbed.BaseURL = baseURL
	}
}

// WithChannelName sets a display name override.
func WithChannelName(key, lang, name string) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.ChannelNames[key] == nil {
			b.cfg.ChannelNames[key] = map[string]string{}
		}
		b.cfg.ChannelNames[key][lang] = name
	}
}

// WithWriteBack toggles header write-back.
func WithWriteBack(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Documents.WriteBack = enabled
	}
}

// WithLogDir enables the file log sink under the temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.VaultDir)
}
