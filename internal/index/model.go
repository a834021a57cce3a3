package index

import "vaultindex/internal/catalog"

// Playlist groups the videos that share a playlist id within a channel.
type Playlist struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Videos []catalog.Video `json:"videos"`
}

// Channel is one content category in one language.
type Channel struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Color       string               `json:"color"`
	Videos      []catalog.Video      `json:"videos"`
	Playlists   map[string]*Playlist `json:"playlists"`
}

// Index maps language code to channel key to channel.
type Index map[string]map[string]*Channel

// Channel returns the channel for lang and key, if present.
func (idx Index) Channel(lang, key string) (*Channel, bool) {
	ch, ok := idx[lang][key]
	return ch, ok
}

// VideoCount returns the number of videos across all channel lists.
func (idx Index) VideoCount() int {
	total := 0
	for _, channels := range idx {
		for _, ch := range channels {
			total += len(ch.Videos)
		}
	}
	return total
}

func newChannel(title, description, color string) *Channel {
	return &Channel{
		Title:       title,
		Description: description,
		Color:       color,
		Videos:      []catalog.Video{},
		Playlists:   map[string]*Playlist{},
	}
}
