package preflight

import (
	"context"

	"vaultindex/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDirectory("Vault directory", cfg.Paths.VaultDir),
		CheckWritableFile("Index output", cfg.Paths.OutputPath),
		CheckWritableFile("Title cache", cfg.Paths.CachePath),
		CheckWritableFile("Run lock", cfg.Paths.LockPath),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckWritableDirectory("Log directory", cfg.Paths.LogDir))
	}
	if cfg.OEmbed.Enabled {
		results = append(results, CheckOEmbed(ctx, cfg.OEmbed.BaseURL, cfg.OEmbedTimeout()))
	}
	return results
}

// Failed returns the number of results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
