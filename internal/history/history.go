// Package history keeps the append-only log of past query/response outcomes
// for the lifetime of the process. It feeds short-term persona context back
// into requests and projects rolling performance statistics; nothing is ever
// persisted.
package history

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/strrl/stance/internal/schema"
)

// Tier names the pipeline path that resolved a record.
type Tier string

const (
	TierValidated  Tier = "validated"
	TierPartial    Tier = "partial_extraction"
	TierHeuristic  Tier = "intelligent_analysis"
	TierConnection Tier = "connection_error"
)

// Entry is one recorded exchange. Entries are immutable once recorded:
// created exactly once per query, appended, never mutated or deleted.
type Entry struct {
	ID         string
	Timestamp  time.Time
	Query      string
	Persona    schema.Persona
	Behavior   schema.BehaviorName
	Confidence float64
	Latency    time.Duration
	Success    bool
	Tier       Tier
}

// Stats is a pure projection over the log; it holds no state of its own.
type Stats struct {
	TotalRequests    int
	SuccessfulParses int
	FallbacksUsed    int
	AvgConfidence    float64
}

// SuccessRate is (total - fallbacks) / max(total, 1).
func (s Stats) SuccessRate() float64 {
	total := s.TotalRequests
	if total < 1 {
		total = 1
	}
	return float64(s.TotalRequests-s.FallbacksUsed) / float64(total)
}

// Log is the append-only interaction log. It has a single writer (the
// pipeline controller) on a synchronous request cycle, so no locking.
type Log struct {
	entries []Entry
	entropy *ulid.MonotonicEntropy
}

func NewLog() *Log {
	// Monotonic entropy keeps IDs sortable by creation order even within
	// the same millisecond.
	return &Log{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Record appends unconditionally and never rejects an entry. A missing ID or
// timestamp is filled in; the stored entry is returned.
func (l *Log) Record(e Entry) Entry {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.ID == "" {
		e.ID = ulid.MustNew(ulid.Timestamp(e.Timestamp), l.entropy).String()
	}
	l.entries = append(l.entries, e)
	return e
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in arrival order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// RecentPersonas returns the personas of the last n entries, oldest of the
// window first.
func (l *Log) RecentPersonas(n int) []schema.Persona {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	personas := make([]schema.Persona, 0, len(l.entries)-start)
	for _, e := range l.entries[start:] {
		personas = append(personas, e.Persona)
	}
	return personas
}

// Stats recomputes the projection from the full log on every call so the
// counters can never desynchronize from the entries.
func (l *Log) Stats() Stats {
	stats := Stats{TotalRequests: len(l.entries)}
	if len(l.entries) == 0 {
		return stats
	}

	var confidenceSum float64
	for _, e := range l.entries {
		if e.Success {
			stats.SuccessfulParses++
		} else {
			stats.FallbacksUsed++
		}
		confidenceSum += e.Confidence
	}
	stats.AvgConfidence = confidenceSum / float64(len(l.entries))
	return stats
}
