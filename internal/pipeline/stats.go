package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	sections   int
	tokens     int
	fileType   string
	failed     bool
}

// StatsSnapshot is a point-in-time aggregate of recent ingestion runs.
type StatsSnapshot struct {
	Count    int `json:"count"`
	Failed   int `json:"failed"`
	Sections int `json:"sections"`
	Tokens   int `json:"tokens"`

	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`

	ByFileType map[string]int `json:"by_file_type"`
}

// IngestStats tracks recent ingestion runs within a rolling window.
type IngestStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewIngestStats(maxAge time.Duration) *IngestStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &IngestStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *IngestStats) Record(durationMs int64, sections, tokens int, fileType string, failed bool) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
		sections:   sections,
		tokens:     tokens,
		fileType:   fileType,
		failed:     failed,
	})
}

func (s *IngestStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{ByFileType: map[string]int{}}
	}

	values := make([]int64, 0, len(s.samples))
	byType := make(map[string]int)
	var sum int64
	snap := StatsSnapshot{}
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		snap.Sections += sm.sections
		snap.Tokens += sm.tokens
		if sm.failed {
			snap.Failed++
		}
		if sm.fileType != "" {
			byType[sm.fileType]++
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	snap.ByFileType = byType
	return snap
}

func (s *IngestStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
