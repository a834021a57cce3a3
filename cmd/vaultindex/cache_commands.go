package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vaultindex/internal/titlecache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the playlist title cache",
		Long: `Inspect and manage the playlist title cache.

The title cache maps playlist IDs to the titles fetched from the oEmbed
endpoint, so each playlist is looked up at most once.

Commands:
  list     - List all cached playlist titles
  remove   - Remove a single entry by playlist ID
  clear    - Remove all cached entries`,
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached playlist titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openTitleCache(ctx, cmd)
			if err != nil {
				return err
			}

			entries := cache.List()
			if ctx.JSONMode() {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Title cache: empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{strconv.Itoa(i + 1), entry.PlaylistID, entry.Title})
			}
			fmt.Fprintf(out, "Title cache: %d entries (%s)\n", len(entries), cache.Path())
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Playlist ID", "Title"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
				shouldColorize(out),
			))
			return nil
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <playlist-id>",
		Short: "Remove a cached playlist title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openTitleCache(ctx, cmd)
			if err != nil {
				return err
			}
			title, _ := cache.Lookup(args[0])
			if err := cache.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", args[0], title)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached playlist titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openTitleCache(ctx, cmd)
			if err != nil {
				return err
			}
			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached titles\n", count)
			return nil
		},
	}
}

func openTitleCache(ctx *commandContext, cmd *cobra.Command) (*titlecache.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.newLogger(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return titlecache.NewCache(cfg.Paths.CachePath, logger), nil
}
