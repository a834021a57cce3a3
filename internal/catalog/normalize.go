package catalog

import (
	"fmt"
	"strings"
	"time"

	"vaultindex/internal/language"
)

const defaultThumbnailTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

// Normalizer maps raw headers to items.
type Normalizer struct {
	now               func() time.Time
	thumbnailTemplate string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the clock used for scheduled publication checks.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithThumbnailTemplate sets the fmt template that receives the video id.
func WithThumbnailTemplate(tmpl string) Option {
	return func(n *Normalizer) {
		if tmpl != "" {
			n.thumbnailTemplate = tmpl
		}
	}
}

// NewNormalizer constructs a Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now, thumbnailTemplate: defaultThumbnailTemplate}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize validates raw and builds its item. Outcome.Promoted is set when
// the derived state differs from the header and must be written back.
func (n *Normalizer) Normalize(raw RawItem) (Item, Outcome) {
	if missing := missingRequired(raw); missing != "" {
		return Item{}, Outcome{Skip: SkipMissingRequired, Detail: missing}
	}

	lang, ok := language.Normalize(*raw.Language)
	if !ok {
		return Item{}, Outcome{Skip: SkipUnknownLanguage, Detail: lang}
	}

	state, promoted := n.deriveState(raw)
	videoID := *raw.VideoID

	video := Video{
		Title:       valueOr(raw.Title, DefaultTitle),
		VideoID:     videoID,
		Thumbnail:   fmt.Sprintf(n.thumbnailTemplate, videoID),
		Duration:    valueOr(raw.Duration, DefaultDuration),
		PublishedAt: Unscheduled,
		State:       state,
		Serie:       valueOr(raw.Serie, Placeholder),
		SubSerie:    valueOr(raw.SubSerie, Placeholder),
		PlaylistID:  raw.PlaylistID,
		VideoType:   valueOr(raw.VideoType, DefaultVideoType),
	}
	if raw.PublishDate != nil {
		published := raw.PublishDate.String()
		video.PublishedAt = published
		video.ReleaseDate = &published
	}

	item := Item{
		Language:          lang,
		Channel:           language.Lower(*raw.Channel),
		ChannelPublicName: valueOr(raw.ChannelPublicName, ""),
		PlaylistTitle:     valueOr(raw.Playlist, ""),
		Video:             video,
	}
	return item, Outcome{Promoted: promoted}
}

// deriveState applies the lifecycle rules in order. Each rule sees the
// result of the previous one.
func (n *Normalizer) deriveState(raw RawItem) (string, bool) {
	state := valueOr(raw.State, StateDraft)
	promoted := false
	ready := isReal(raw.VideoID)

	if state == StateScheduled && raw.PublishDate != nil {
		if due, ok := raw.PublishDate.Instant(); ok && !due.After(n.now()) {
			state, promoted = StatePublished, true
		}
	}
	if state == StateProduced && ready {
		state, promoted = StatePublished, true
	}
	if state == StateScheduled && raw.PublishDate == nil && ready {
		state, promoted = StatePublished, true
	}
	return state, promoted
}

func missingRequired(raw RawItem) string {
	var missing []string
	if !present(raw.VideoID) {
		missing = append(missing, "video_id")
	}
	if !present(raw.Language) {
		missing = append(missing, "language")
	}
	if !present(raw.Channel) {
		missing = append(missing, "channel")
	}
	return strings.Join(missing, ",")
}

func present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

// isReal reports whether v is set and not the placeholder.
func isReal(v *string) bool {
	return present(v) && !IsPlaceholder(*v)
}

// IsPlaceholder reports whether v is the "na" placeholder in any case.
func IsPlaceholder(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), Placeholder)
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
