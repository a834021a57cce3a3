package index

import (
	"slices"
	"strings"

	"vaultindex/internal/catalog"
)

// Sort orders every channel list newest first and every playlist oldest
// first. Unscheduled videos go last in both. Dates compare as strings, so
// they must be zero-padded ISO values to sort chronologically.
func Sort(idx Index) {
	for _, channels := range idx {
		for _, ch := range channels {
			slices.SortStableFunc(ch.Videos, newestFirst)
			for _, playlist := range ch.Playlists {
				slices.SortStableFunc(playlist.Videos, oldestFirst)
			}
		}
	}
}

func newestFirst(a, b catalog.Video) int {
	if c, decided := unscheduledLast(a, b); decided {
		return c
	}
	return strings.Compare(b.PublishedAt, a.PublishedAt)
}

func oldestFirst(a, b catalog.Video) int {
	if c, decided := unscheduledLast(a, b); decided {
		return c
	}
	return strings.Compare(a.PublishedAt, b.PublishedAt)
}

func unscheduledLast(a, b catalog.Video) (int, bool) {
	aTBA := a.PublishedAt == catalog.Unscheduled
	bTBA := b.PublishedAt == catalog.Unscheduled
	switch {
	case aTBA && bTBA:
		return 0, true
	case aTBA:
		return 1, true
	case bTBA:
		return -1, true
	default:
		return 0, false
	}
}
