package generator

import (
	"time"

	"vaultindex/internal/catalog"
)

// Status is the per-document outcome of a run.
type Status string

const (
	StatusIndexed Status = "indexed"
	StatusSkipped Status = "skipped"
)

// Result records what happened to one document.
type Result struct {
	Path            string
	Status          Status
	Reason          catalog.SkipReason
	Err             error
	Language        string
	Channel         string
	VideoID         string
	State           string
	Promoted        bool
	WriteBackFailed bool
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID          string
	OutputPath     string
	DryRun         bool
	Results        []Result
	Indexed        int
	Skipped        int
	Promoted       int
	WriteBacks     int
	WriteBackFails int
	Playlists      int
	TitleCacheHits int
	TitleFetches   int
	TitleFailures  int
	CacheSaved     bool
	Duration       time.Duration
}

// SkipCounts returns the number of skipped documents per reason.
func (s *Summary) SkipCounts() map[catalog.SkipReason]int {
	counts := map[catalog.SkipReason]int{}
	for _, r := range s.Results {
		if r.Status == StatusSkipped {
			counts[r.Reason]++
		}
	}
	return counts
}

func (s *Summary) record(r Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusIndexed:
		s.Indexed++
	case StatusSkipped:
		s.Skipped++
	}
	if r.Promoted {
		s.Promoted++
	}
	if r.WriteBackFailed {
		s.WriteBackFails++
	}
}
