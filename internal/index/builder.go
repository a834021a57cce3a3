package index

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vaultindex/internal/catalog"
	"vaultindex/internal/config"
	"vaultindex/internal/language"
	"vaultindex/internal/logging"
)

// UntitledPlaylist is used when no title source yields a value.
const UntitledPlaylist = "Untitled Playlist"

// TitleResolver fetches a playlist title from an external source.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, playlistID string) (string, error)
}

// TitleCache stores resolved playlist titles across runs.
type TitleCache interface {
	Lookup(playlistID string) (string, bool)
	Put(playlistID, title string) error
}

// Stats summarizes title resolution work done by a Builder.
type Stats struct {
	Items          int
	Playlists      int
	TitleCacheHits int
	TitleFetches   int
	TitleFailures  int
}

// Builder folds catalog items into an Index. It is not safe for concurrent use.
type Builder struct {
	cfg       *config.Config
	resolver  TitleResolver
	cache     TitleCache
	logger    *slog.Logger
	index     Index
	// fetched holds the outcome of every lookup made this run, keyed by
	// playlist id. Failed lookups map to UntitledPlaylist.
	fetched map[string]string
	stats   Stats
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the external title source. Without one, uncached
// titles fall back to UntitledPlaylist.
func WithResolver(r TitleResolver) Option {
	return func(b *Builder) {
		b.resolver = r
	}
}

// WithCache sets the title cache consulted before the resolver.
func WithCache(c TitleCache) Option {
	return func(b *Builder) {
		b.cache = c
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder returns a builder whose index is pre-seeded with every
// configured channel in every tracked language.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	b := &Builder{
		cfg:       cfg,
		logger:    logging.NewNop(),
		index:     Index{},
		fetched:   map[string]string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.NewComponentLogger(b.logger, "index")

	for _, lang := range language.Codes() {
		b.index[lang] = map[string]*Channel{}
		for key := range cfg.Channels {
			b.index[lang][key] = b.channelFor(key, lang, "")
		}
	}
	return b
}

// Add appends item to its channel and, when it names a playlist, to that
// playlist as well.
func (b *Builder) Add(ctx context.Context, item catalog.Item) {
	channels, ok := b.index[item.Language]
	if !ok {
		channels = map[string]*Channel{}
		b.index[item.Language] = channels
	}

	ch, exists := channels[item.Channel]
	if !exists {
		ch = b.channelFor(item.Channel, item.Language, item.ChannelPublicName)
		channels[item.Channel] = ch
	} else if item.ChannelPublicName != "" {
		ch.Title = item.ChannelPublicName
	}

	ch.Videos = append(ch.Videos, item.Video)
	b.stats.Items++

	playlistID := item.PlaylistID()
	if playlistID == "" {
		return
	}
	playlist, exists := ch.Playlists[playlistID]
	if !exists {
		playlist = &Playlist{
			ID:     playlistID,
			Title:  b.playlistTitle(ctx, playlistID, item),
			Videos: []catalog.Video{},
		}
		ch.Playlists[playlistID] = playlist
		b.stats.Playlists++
	}
	playlist.Videos = append(playlist.Videos, item.Video)
}

// Index sorts every list and returns the built index.
func (b *Builder) Index() Index {
	Sort(b.index)
	return b.index
}

// Stats returns counters accumulated so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

// channelFor resolves display metadata for a channel, highest priority
// first: public name, configured name override, configured locale, then
// the capitalized key.
func (b *Builder) channelFor(key, lang, publicName string) *Channel {
	locale, color, hasLocale := b.cfg.ChannelLocale(key, lang)
	if color == "" {
		color = b.cfg.Index.DefaultColor
	}

	title := publicName
	if title == "" {
		if name, ok := b.cfg.ChannelNameOverride(key, lang); ok {
			title = name
		}
	}
	if title == "" && hasLocale {
		title = locale.Title
	}
	if title == "" {
		title = language.Capitalize(key)
	}
	return newChannel(title, locale.Description, color)
}

func (b *Builder) playlistTitle(ctx context.Context, playlistID string, item catalog.Item) string {
	if usable(item.PlaylistTitle) {
		return item.PlaylistTitle
	}
	if usable(item.Video.Serie) {
		return item.Video.Serie
	}

	logger := b.logger.With(logging.String(logging.FieldPlaylistID, playlistID))
	if path, ok := logging.DocumentFromContext(ctx); ok {
		logger = logger.With(logging.String(logging.FieldDocument, path))
	}

	// A cached entry is final, even when it holds no usable title.
	if b.cache != nil {
		if title, ok := b.cache.Lookup(playlistID); ok {
			b.stats.TitleCacheHits++
			if usable(title) {
				return title
			}
			return UntitledPlaylist
		}
	}

	if title, tried := b.fetched[playlistID]; tried {
		return title
	}
	if b.resolver == nil {
		return UntitledPlaylist
	}

	logger.Info("fetching playlist title")
	b.stats.TitleFetches++
	title, err := b.resolver.ResolveTitle(ctx, playlistID)
	if err == nil && !usable(title) {
		err = fmt.Errorf("unusable title %q", title)
	}
	if err != nil {
		b.stats.TitleFailures++
		b.fetched[playlistID] = UntitledPlaylist
		logging.WarnWithContext(logger, "playlist title lookup failed", "playlist_title_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "set a playlist field in the document header or retry when online"),
			logging.String(logging.FieldImpact, "playlist shown as "+UntitledPlaylist),
		)
		return UntitledPlaylist
	}
	b.fetched[playlistID] = title
	if b.cache != nil {
		if err := b.cache.Put(playlistID, title); err != nil {
			logger.Debug("playlist title not cached", logging.Error(err))
		}
	}
	return title
}

func usable(v string) bool {
	return strings.TrimSpace(v) != "" && !catalog.IsPlaceholder(v)
}
