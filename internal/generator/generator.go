package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vaultindex/internal/catalog"
	"vaultindex/internal/config"
	"vaultindex/internal/frontmatter"
	"vaultindex/internal/index"
	"vaultindex/internal/logging"
	"vaultindex/internal/oembed"
	"vaultindex/internal/titlecache"
	"vaultindex/internal/vault"
)

// ErrLocked reports that another run holds the run lock.
var ErrLocked = errors.New("another vaultindex run is in progress")

// Options adjusts a single run.
type Options struct {
	// DryRun builds the index without writing the index, cache, or documents.
	DryRun bool
	// NoWriteBack leaves document headers untouched even when promoted.
	NoWriteBack bool
	// Offline disables external title lookups.
	Offline bool
	// Resolver replaces the oEmbed client.
	Resolver index.TitleResolver
	// Now replaces the wall clock used for publication checks.
	Now func() time.Time
}

// Run executes one generation pass using cfg.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Summary, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	start := time.Now()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	// run_id is attached once here; collaborators add only their component.
	base := logging.WithContext(ctx, logger)
	logger = logging.NewComponentLogger(base, "generator")

	info, err := os.Stat(cfg.Paths.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("vault directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault directory: %s is not a directory", cfg.Paths.VaultDir)
	}

	if !opts.DryRun {
		unlock, err := acquireLock(cfg.Paths.LockPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	resolver, err := buildResolver(cfg, opts)
	if err != nil {
		return nil, err
	}

	cache := titlecache.NewCache(cfg.Paths.CachePath, base)
	builder := index.NewBuilder(cfg,
		index.WithCache(cache),
		index.WithResolver(resolver),
		index.WithLogger(base),
	)
	normalizerOpts := []catalog.Option{catalog.WithThumbnailTemplate(cfg.Index.ThumbnailURLTemplate)}
	if opts.Now != nil {
		normalizerOpts = append(normalizerOpts, catalog.WithClock(opts.Now))
	}
	normalizer := catalog.NewNormalizer(normalizerOpts...)
	loader := vault.NewLoader(cfg.Paths.VaultDir,
		vault.WithExtension(cfg.Documents.Extension),
		vault.WithSkipHidden(cfg.Documents.SkipHidden),
		vault.WithLogger(base),
	)

	writeBack := cfg.Documents.WriteBack && !opts.NoWriteBack && !opts.DryRun
	summary := &Summary{RunID: runID, OutputPath: cfg.Paths.OutputPath, DryRun: opts.DryRun}

	logger.Info("vault scan started",
		logging.String("vault", cfg.Paths.VaultDir),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("write_back", writeBack),
		logging.Bool("title_lookup", resolver != nil),
	)

	for doc := range loader.Documents() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docCtx := logging.WithDocument(ctx, doc.Path)
		docLogger := logger.With(logging.String(logging.FieldDocument, doc.Path))
		result := processDocument(docCtx, doc, normalizer, builder, writeBack, docLogger)
		summary.record(result)
	}

	idx := builder.Index()
	stats := builder.Stats()
	summary.Playlists = stats.Playlists
	summary.TitleCacheHits = stats.TitleCacheHits
	summary.TitleFetches = stats.TitleFetches
	summary.TitleFailures = stats.TitleFailures
	for _, r := range summary.Results {
		if r.Promoted && writeBack && !r.WriteBackFailed {
			summary.WriteBacks++
		}
	}

	if !opts.DryRun {
		if cache.Dirty() {
			if err := cache.Save(); err != nil {
				logging.WarnWithContext(logger, "failed to save playlist title cache", "titlecache_save_failed",
					logging.Error(err),
					logging.String("path", cfg.Paths.CachePath),
					logging.String(logging.FieldErrorHint, "check permissions on the cache directory"),
					logging.String(logging.FieldImpact, "playlist titles will be fetched again next run"),
				)
			} else {
				summary.CacheSaved = true
			}
		}
		if err := index.Write(cfg.Paths.OutputPath, idx); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	logger.Info("index generated",
		logging.String("output", cfg.Paths.OutputPath),
		logging.Int("indexed", summary.Indexed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("promoted", summary.Promoted),
		logging.Int("playlists", summary.Playlists),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func processDocument(ctx context.Context, doc vault.Document, normalizer *catalog.Normalizer, builder *index.Builder, writeBack bool, logger *slog.Logger) Result {
	result := Result{Path: doc.Path}

	if doc.Err != nil {
		return skip(logger, result, catalog.SkipReadFailed, doc.Err)
	}

	root, err := frontmatter.Decode(doc.Text)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNoHeader) {
			return skip(logger, result, catalog.SkipNoHeader, err)
		}
		return skip(logger, result, catalog.SkipHeaderParseFailed, err)
	}

	raw, err := catalog.FromNode(root)
	if err != nil {
		return skip(logger, result, catalog.SkipHeaderParseFailed, err)
	}

	item, outcome := normalizer.Normalize(raw)
	if outcome.Skipped() {
		return skip(logger, result, outcome.Skip, fmt.Errorf("%s: %s", outcome.Skip, outcome.Detail))
	}

	result.Status = StatusIndexed
	result.Language = item.Language
	result.Channel = item.Channel
	result.VideoID = item.Video.VideoID
	result.State = item.Video.State
	result.Promoted = outcome.Promoted

	if outcome.Promoted {
		logger.Info("document promoted", logging.String("state", item.Video.State))
		if writeBack {
			if _, err := frontmatter.WriteState(doc.Path, item.Video.State); err != nil {
				result.WriteBackFailed = true
				logging.WarnWithContext(logger, "failed to write state back to document", "write_back_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check document permissions"),
					logging.String(logging.FieldImpact, "document will be promoted again next run"),
				)
			}
		}
	}

	builder.Add(ctx, item)
	return result
}

func skip(logger *slog.Logger, result Result, reason catalog.SkipReason, err error) Result {
	result.Status = StatusSkipped
	result.Reason = reason
	result.Err = err

	switch reason {
	case catalog.SkipReadFailed, catalog.SkipHeaderParseFailed:
		logging.WarnWithContext(logger, "document skipped", "document_skipped",
			logging.String(logging.FieldReason, string(reason)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the document file or its header"),
			logging.String(logging.FieldImpact, "document excluded from the index"),
		)
	default:
		logger.Info("document skipped",
			logging.String(logging.FieldReason, string(reason)),
			logging.Error(err),
		)
	}
	return result
}

func buildResolver(cfg *config.Config, opts Options) (index.TitleResolver, error) {
	if opts.Offline {
		return nil, nil
	}
	if opts.Resolver != nil {
		return opts.Resolver, nil
	}
	if !cfg.OEmbed.Enabled {
		return nil, nil
	}
	client, err := oembed.New(cfg.OEmbed.BaseURL, oembed.WithTimeout(cfg.OEmbedTimeout()))
	if err != nil {
		return nil, fmt.Errorf("oembed client: %w", err)
	}
	return client, nil
}

// acquireLock takes the run lock and returns its release function.
func acquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return func() { _ = lock.Unlock() }, nil
}
