package catalog_test

import (
	"testing"
	"time"

	"vaultindex/internal/catalog"
	"vaultindex/internal/frontmatter"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)

func normalizeText(t *testing.T, text string) (catalog.Item, catalog.Outcome) {
	t.Helper()
	root, err := frontmatter.Decode(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw, err := catalog.FromNode(root)
	if err != nil {
		t.Fatalf("FromNode: %v", err)
	}
	n := catalog.NewNormalizer(catalog.WithClock(func() time.Time { return fixedNow }))
	return n.Normalize(raw)
}

func TestNormalizeMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no video_id", "---\nlanguage: en\nchannel: math\n---\n"},
		{"no language", "---\nvideo_id: abc\nchannel: math\n---\n"},
		{"no channel", "---\nvideo_id: abc\nlanguage: en\n---\n"},
		{"null video_id", "---\nvideo_id:\nlanguage: en\nchannel: math\n---\n"},
		{"empty channel", "---\nvideo_id: abc\nlanguage: en\nchannel: \"\"\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome := normalizeText(t, tt.text)
			if outcome.Skip != catalog.SkipMissingRequired {
				t.Fatalf("expected missing_required_field, got %+v", outcome)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	for _, lang := range []string{"spanish", "SPANISH", "Spanish", "es"} {
		t.Run(lang, func(t *testing.T) {
			item, outcome := normalizeText(t, "---\nvideo_id: abc\nlanguage: "+lang+"\nchannel: Math\n---\n")
			if outcome.Skipped() {
				t.Fatalf("unexpected skip %+v", outcome)
			}
			if item.Language != "es" {
				t.Fatalf("language = %q, want es", item.Language)
			}
			if item.Channel != "math" {
				t.Fatalf("channel = %q, want math", item.Channel)
			}
		})
	}

	_, outcome := normalizeText(t, "---\nvideo_id: abc\nlanguage: french\nchannel: math\n---\n")
	if outcome.Skip != catalog.SkipUnknownLanguage {
		t.Fatalf("expected unknown_language, got %+v", outcome)
	}
}

func TestNormalizeStateRules(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		state    string
		promoted bool
	}{
		{"absent state is draft", "video_id: abc", "draft", false},
		{"scheduled past datetime", "video_id: abc\nstate: scheduled\npublish_date: 2024-01-01 10:00:00", "published", true},
		{"scheduled past quoted datetime", "video_id: abc\nstate: scheduled\npublish_date: \"2024-01-01 10:00:00\"", "published", true},
		{"scheduled past date", "video_id: abc\nstate: scheduled\npublish_date: 2024-01-01", "published", true},
		{"scheduled at now", "video_id: abc\nstate: scheduled\npublish_date: 2025-03-15 12:00:00", "published", true},
		{"scheduled future", "video_id: abc\nstate: scheduled\npublish_date: 2030-01-01 00:00:00", "scheduled", false},
		{"scheduled unparseable date", "video_id: abc\nstate: scheduled\npublish_date: \"next week\"", "scheduled", false},
		{"scheduled quoted date only never due", "video_id: abc\nstate: scheduled\npublish_date: \"2024-01-01\"", "scheduled", false},
		{"produced with id", "video_id: abc123\nstate: produced", "published", true},
		{"produced with placeholder", "video_id: NA\nstate: produced", "produced", false},
		{"scheduled no date with id", "video_id: abc\nstate: scheduled", "published", true},
		{"scheduled no date placeholder", "video_id: na\nstate: scheduled", "scheduled", false},
		{"published untouched", "video_id: abc\nstate: published\npublish_date: 2024-01-01", "published", false},
		{"unknown state untouched", "video_id: abc\nstate: archived", "archived", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, outcome := normalizeText(t, "---\nlanguage: en\nchannel: math\n"+tt.header+"\n---\n")
			if outcome.Skipped() {
				t.Fatalf("unexpected skip %+v", outcome)
			}
			if item.Video.State != tt.state || outcome.Promoted != tt.promoted {
				t.Fatalf("state = %q promoted = %v, want %q %v", item.Video.State, outcome.Promoted, tt.state, tt.promoted)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	item, _ := normalizeText(t, "---\nvideo_id: abc\nlanguage: en\nchannel: math\n---\n")
	v := item.Video
	if v.Title != "Untitled" || v.Duration != "00:00" || v.Serie != "na" || v.SubSerie != "na" || v.VideoType != "unknown" {
		t.Fatalf("unexpected defaults %+v", v)
	}
	if v.PublishedAt != "TBA" || v.ReleaseDate != nil || v.PlaylistID != nil {
		t.Fatalf("unexpected date or playlist defaults %+v", v)
	}
	if v.Thumbnail != "https://img.youtube.com/vi/abc/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail %q", v.Thumbnail)
	}
}

func TestNormalizeFields(t *testing.T) {
	text := "---\n" +
		"title: Limits\n" +
		"video_id: abc\n" +
		"language: english\n" +
		"channel: math\n" +
		"state: published\n" +
		"publish_date: 2024-06-01\n" +
		"serie: Calculus\n" +
		"sub_serie: Limits\n" +
		"playlist_id: PL1\n" +
		"playlist: Calculus I\n" +
		"video_duration: \"12:34\"\n" +
		"duration: \"99:99\"\n" +
		"video_type: short\n" +
		"channel_public_name: Math Lab\n" +
		"---\nbody"
	item, outcome := normalizeText(t, text)
	if outcome.Skipped() {
		t.Fatalf("unexpected skip %+v", outcome)
	}
	v := item.Video
	if v.Title != "Limits" || v.Duration != "12:34" || v.Serie != "Calculus" || v.SubSerie != "Limits" || v.VideoType != "short" {
		t.Fatalf("unexpected video %+v", v)
	}
	if v.PublishedAt != "2024-06-01" || v.ReleaseDate == nil || *v.ReleaseDate != "2024-06-01" {
		t.Fatalf("unexpected dates %+v", v)
	}
	if item.PlaylistID() != "PL1" || item.PlaylistTitle != "Calculus I" || item.ChannelPublicName != "Math Lab" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestNormalizeDurationAlias(t *testing.T) {
	item, _ := normalizeText(t, "---\nvideo_id: abc\nlanguage: en\nchannel: math\nduration: \"05:00\"\n---\n")
	if item.Video.Duration != "05:00" {
		t.Fatalf("duration = %q", item.Video.Duration)
	}
}

func TestDateValueString(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"native date", "publish_date: 2024-01-01", "2024-01-01"},
		{"native datetime", "publish_date: 2024-01-01 09:30:00", "2024-01-01 09:30:00"},
		{"zoned datetime", "publish_date: 2024-01-01T09:30:00Z", "2024-01-01 09:30:00+00:00"},
		{"quoted text", "publish_date: \"2024-01-01 9:30\"", "2024-01-01 9:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _ := normalizeText(t, "---\nvideo_id: abc\nlanguage: en\nchannel: math\nstate: draft\n"+tt.header+"\n---\n")
			if item.Video.PublishedAt != tt.want {
				t.Fatalf("published_at = %q, want %q", item.Video.PublishedAt, tt.want)
			}
		})
	}
}

func TestDateValueInstantLocal(t *testing.T) {
	root, err := frontmatter.Decode("---\npublish_date: 2024-01-01\n---\n")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := catalog.FromNode(root)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := raw.PublishDate.Instant()
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if !ok || !got.Equal(want) {
		t.Fatalf("Instant() = %v %v, want %v", got, ok, want)
	}
}

func TestThumbnailTemplate(t *testing.T) {
	root, err := frontmatter.Decode("---\nvideo_id: abc\nlanguage: de\nchannel: math\n---\n")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := catalog.FromNode(root)
	if err != nil {
		t.Fatal(err)
	}
	item, _ := catalog.NewNormalizer(catalog.WithThumbnailTemplate("https://cdn.example/%s.jpg")).Normalize(raw)
	if item.Video.Thumbnail != "https://cdn.example/abc.jpg" {
		t.Fatalf("thumbnail = %q", item.Video.Thumbnail)
	}
}
