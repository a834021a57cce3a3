package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vaultindex/internal/config"
	"vaultindex/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	json      bool

	// Set by generate. Overrides are applied before validation so --vault
	// can stand in for a missing vault_dir.
	vault  string
	output string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config), c.flagOverrides)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) flagOverrides(cfg *config.Config) {
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(c.flags.logFormat); format != "" {
		cfg.Logging.Format = format
	}
	if vault := strings.TrimSpace(c.flags.vault); vault != "" {
		cfg.Paths.VaultDir = vault
	}
	if output := strings.TrimSpace(c.flags.output); output != "" {
		cfg.Paths.OutputPath = output
	}
}

// JSONMode reports whether commands should emit JSON instead of text.
func (c *commandContext) JSONMode() bool {
	return c.flags != nil && c.flags.json
}

// newLogger builds the command logger. Without a log directory output goes to
// the command's stderr.
func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	if cfg.Paths.LogDir != "" {
		return logging.NewFromConfig(cfg)
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
