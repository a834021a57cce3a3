package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vaultindex/internal/catalog"
	"vaultindex/internal/config"
	"vaultindex/internal/generator"
	"vaultindex/internal/language"
)

type generateFlags struct {
	dryRun      bool
	noWriteBack bool
	offline     bool
}

type generateReport struct {
	RunID          string          `json:"run_id"`
	Output         string          `json:"output"`
	DryRun         bool            `json:"dry_run"`
	Indexed        int             `json:"indexed"`
	Skipped        int             `json:"skipped"`
	Promoted       int             `json:"promoted"`
	WriteBacks     int             `json:"write_backs"`
	WriteBackFails int             `json:"write_back_failures"`
	Playlists      int             `json:"playlists"`
	TitleCacheHits int             `json:"title_cache_hits"`
	TitleFetches   int             `json:"title_fetches"`
	TitleFailures  int             `json:"title_failures"`
	CacheSaved     bool            `json:"cache_saved"`
	DurationMS     int64           `json:"duration_ms"`
	ByLanguage     map[string]int  `json:"indexed_by_language"`
	SkippedDocs    []skippedReport `json:"skipped_documents"`
}

type skippedReport struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan the vault and write the content index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !flags.dryRun {
				if err := cfg.EnsureDirectories(); err != nil {
					return fmt.Errorf("ensure directories: %w", err)
				}
			}

			logger, err := ctx.newLogger(cmd, cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			summary, err := generator.Run(cmd.Context(), cfg, logger, generator.Options{
				DryRun:      flags.dryRun,
				NoWriteBack: flags.noWriteBack,
				Offline:     flags.offline,
			})
			if err != nil {
				return fmt.Errorf("generate index: %w", err)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, buildGenerateReport(cfg, summary))
			}
			printGenerateSummary(cmd, cfg, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&ctx.flags.vault, "vault", "", "Vault directory to scan (overrides config)")
	cmd.Flags().StringVar(&ctx.flags.output, "output", "", "Index output path (overrides config)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Build the index without writing any files")
	cmd.Flags().BoolVar(&flags.noWriteBack, "no-write-back", false, "Do not rewrite the state of promoted documents")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "Skip oEmbed playlist title lookups")
	return cmd
}

func buildGenerateReport(cfg *config.Config, summary *generator.Summary) generateReport {
	report := generateReport{
		RunID:          summary.RunID,
		Output:         summary.OutputPath,
		DryRun:         summary.DryRun,
		Indexed:        summary.Indexed,
		Skipped:        summary.Skipped,
		Promoted:       summary.Promoted,
		WriteBacks:     summary.WriteBacks,
		WriteBackFails: summary.WriteBackFails,
		Playlists:      summary.Playlists,
		TitleCacheHits: summary.TitleCacheHits,
		TitleFetches:   summary.TitleFetches,
		TitleFailures:  summary.TitleFailures,
		CacheSaved:     summary.CacheSaved,
		DurationMS:     summary.Duration.Milliseconds(),
		ByLanguage:     indexedByLanguage(summary),
		SkippedDocs:    []skippedReport{},
	}
	for _, r := range summary.Results {
		if r.Status != generator.StatusSkipped {
			continue
		}
		entry := skippedReport{Path: relativeToVault(cfg, r.Path), Reason: string(r.Reason)}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		report.SkippedDocs = append(report.SkippedDocs, entry)
	}
	return report
}

func printGenerateSummary(cmd *cobra.Command, cfg *config.Config, summary *generator.Summary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Index", colorize) {
		fmt.Fprintln(out, line)
	}
	output := summary.OutputPath
	if summary.DryRun {
		output += " (dry run, not written)"
	}
	rows := [][]string{
		{"Run", summary.RunID},
		{"Output", output},
		{"Indexed", strconv.Itoa(summary.Indexed)},
	}
	byLanguage := indexedByLanguage(summary)
	for _, code := range language.Codes() {
		if n := byLanguage[code]; n > 0 {
			rows = append(rows, []string{"  " + language.DisplayName(code), strconv.Itoa(n)})
		}
	}
	rows = append(rows, [][]string{
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Promoted", strconv.Itoa(summary.Promoted)},
		{"Written back", fmt.Sprintf("%d (%d failed)", summary.WriteBacks, summary.WriteBackFails)},
		{"Playlists", strconv.Itoa(summary.Playlists)},
		{"Titles cached", strconv.Itoa(summary.TitleCacheHits)},
		{"Titles fetched", fmt.Sprintf("%d (%d failed)", summary.TitleFetches, summary.TitleFailures)},
		{"Cache saved", yesNo(summary.CacheSaved)},
		{"Duration", summary.Duration.Round(time.Millisecond).String()},
	}...)
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}, colorize))

	if summary.Skipped == 0 {
		return
	}

	counts := summary.SkipCounts()
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Skipped documents", colorize) {
		fmt.Fprintln(out, line)
	}
	skipped := make([][]string, 0, summary.Skipped)
	for _, r := range summary.Results {
		if r.Status != generator.StatusSkipped {
			continue
		}
		detail := ""
		if r.Err != nil {
			detail = r.Err.Error()
		}
		skipped = append(skipped, []string{relativeToVault(cfg, r.Path), string(r.Reason), detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Document", "Reason", "Detail"}, skipped, nil, colorize))

	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, fmt.Sprintf("%s=%d", reason, counts[catalog.SkipReason(reason)]))
	}
	fmt.Fprintf(out, "Skip reasons: %s\n", strings.Join(parts, ", "))
}

func indexedByLanguage(summary *generator.Summary) map[string]int {
	counts := map[string]int{}
	for _, r := range summary.Results {
		if r.Status == generator.StatusIndexed {
			counts[r.Language]++
		}
	}
	return counts
}

func relativeToVault(cfg *config.Config, path string) string {
	rel, err := filepath.Rel(cfg.Paths.VaultDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
