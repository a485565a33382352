package rewrite

import (
	"maps"
	"sync"
)

// StatsSnapshot is a point-in-time aggregate of rewrite results.
type StatsSnapshot struct {
	Documents int            `json:"documents"`
	Changed   int            `json:"changed"`
	Edits     map[string]int `json:"edits"`
}

// Stats accumulates results across rewrites. It is safe for concurrent use.
type Stats struct {
	mu        sync.Mutex
	documents int
	changed   int
	edits     map[string]int
}

func NewStats() *Stats {
	return &Stats{edits: make(map[string]int)}
}

func (s *Stats) Record(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents++
	if res.Changed {
		s.changed++
	}
	for rule, n := range res.Edits {
		s.edits[rule] += n
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsSnapshot{
		Documents: s.documents,
		Changed:   s.changed,
		Edits:     maps.Clone(s.edits),
	}
}
