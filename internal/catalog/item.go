package catalog

// Lifecycle states with rule semantics. Other values pass through untouched.
const (
	StateDraft     = "draft"
	StateScheduled = "scheduled"
	StateProduced  = "produced"
	StatePublished = "published"
)

// Output defaults for absent header fields.
const (
	DefaultTitle     = "Untitled"
	DefaultDuration  = "00:00"
	DefaultVideoType = "unknown"
	Placeholder      = "na"
	Unscheduled      = "TBA"
)

// SkipReason classifies why a document produced no item.
type SkipReason string

const (
	SkipReadFailed        SkipReason = "read_failed"
	SkipNoHeader          SkipReason = "no_header"
	SkipHeaderParseFailed SkipReason = "header_parse_failed"
	SkipMissingRequired   SkipReason = "missing_required_field"
	SkipUnknownLanguage   SkipReason = "unknown_language"
)

// Video is the per-item object written to the index.
type Video struct {
	Title       string  `json:"title"`
	VideoID     string  `json:"video_id"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    string  `json:"duration"`
	PublishedAt string  `json:"published_at"`
	State       string  `json:"state"`
	ReleaseDate *string `json:"release_date"`
	Serie       string  `json:"serie"`
	SubSerie    string  `json:"sub_serie"`
	PlaylistID  *string `json:"playlist_id"`
	VideoType   string  `json:"video_type"`
}

// Item is a normalized catalog entry ready for aggregation.
type Item struct {
	Language          string
	Channel           string
	ChannelPublicName string
	// PlaylistTitle is the explicit playlist field, empty when absent.
	PlaylistTitle string
	Video         Video
}

// PlaylistID returns the playlist the item belongs to, or "".
func (i Item) PlaylistID() string {
	if i.Video.PlaylistID == nil {
		return ""
	}
	return *i.Video.PlaylistID
}

// Outcome describes what normalization decided about a document.
type Outcome struct {
	Skip     SkipReason
	Detail   string
	Promoted bool
}

// Skipped reports whether the document is excluded from the index.
func (o Outcome) Skipped() bool {
	return o.Skip != ""
}
