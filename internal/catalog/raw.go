package catalog

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	timestampTag   = "!!timestamp"
	nullTag        = "!!null"
)

// DateValue is a publish_date as written in a header. Native YAML
// timestamps keep their decoded time; quoted or free-form values keep only
// their text.
type DateValue struct {
	Raw      string
	Time     time.Time
	Native   bool
	DateOnly bool
	Zoned    bool
}

// String renders the value the way it appears in the index.
func (d DateValue) String() string {
	if !d.Native {
		return d.Raw
	}
	switch {
	case d.DateOnly:
		return d.Time.Format(dateLayout)
	case d.Zoned:
		return d.Time.Format(dateTimeLayout + "-07:00")
	default:
		return d.Time.Format(dateTimeLayout)
	}
}

// Instant returns the moment the value refers to. Date-only and naive
// values are read in the local zone. ok is false when a text value does not
// match the primary layout.
func (d DateValue) Instant() (time.Time, bool) {
	if d.Native {
		if d.Zoned {
			return d.Time, true
		}
		t := d.Time
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local), true
	}
	t, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(d.Raw), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RawItem is the typed view of one document header. Nil fields were absent
// or null.
type RawItem struct {
	Title             *string
	VideoID           *string
	Language          *string
	Channel           *string
	State             *string
	PublishDate       *DateValue
	Serie             *string
	SubSerie          *string
	PlaylistID        *string
	Playlist          *string
	Duration          *string
	VideoType         *string
	ChannelPublicName *string
}

// FromNode reads a RawItem from a header mapping node. Unknown keys are
// ignored, as are values that are not scalars.
func FromNode(root *yaml.Node) (RawItem, error) {
	var raw RawItem
	if root == nil || root.Kind != yaml.MappingNode {
		return raw, fmt.Errorf("header is not a mapping")
	}

	var duration, durationAlias *string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := resolve(root.Content[i+1])

		if key == "publish_date" {
			date, err := dateValue(value)
			if err != nil {
				return raw, fmt.Errorf("publish_date: %w", err)
			}
			raw.PublishDate = date
			continue
		}

		text := scalar(value)
		switch key {
		case "title":
			raw.Title = text
		case "video_id":
			raw.VideoID = text
		case "language":
			raw.Language = text
		case "channel":
			raw.Channel = text
		case "state":
			raw.State = text
		case "serie":
			raw.Serie = text
		case "sub_serie":
			raw.SubSerie = text
		case "playlist_id":
			raw.PlaylistID = text
		case "playlist":
			raw.Playlist = text
		case "video_duration":
			duration = text
		case "duration":
			durationAlias = text
		case "video_type":
			raw.VideoType = text
		case "channel_public_name":
			raw.ChannelPublicName = text
		}
	}
	raw.Duration = duration
	if raw.Duration == nil {
		raw.Duration = durationAlias
	}
	return raw, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func scalar(n *yaml.Node) *string {
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() == nullTag {
		return nil
	}
	v := n.Value
	return &v
}

func dateValue(n *yaml.Node) (*DateValue, error) {
	text := scalar(n)
	if text == nil || *text == "" {
		return nil, nil
	}
	if n.ShortTag() != timestampTag {
		return &DateValue{Raw: *text}, nil
	}
	var t time.Time
	if err := n.Decode(&t); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(*text)
	sep := strings.IndexAny(raw, "Tt ")
	return &DateValue{
		Raw:      *text,
		Time:     t,
		Native:   true,
		DateOnly: sep < 0,
		Zoned:    sep >= 0 && strings.ContainsAny(raw[sep+1:], "Zz+-"),
	}, nil
}
