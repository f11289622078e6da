// Package stats aggregates test durations for the timing summary.
package stats

import (
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// DefaultSlowestLimit is how many slow tests are retained for display.
const DefaultSlowestLimit = 10

// TestTiming is one recorded test duration.
type TestTiming struct {
	Title    string
	Duration time.Duration
}

// Timings collects per-test durations across a run.
type Timings struct {
	histogram *hdrhistogram.Histogram
	slowest   []TestTiming
	limit     int
}

// NewTimings creates an empty collector.
func NewTimings() *Timings {
	return &Timings{
		// Histogram: 1ms to 10m range, 3 significant digits
		histogram: hdrhistogram.New(1, 600_000, 3),
		limit:     DefaultSlowestLimit,
	}
}

// Record adds one finalized test duration.
func (t *Timings) Record(title string, d time.Duration) {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	if ms > 600_000 {
		ms = 600_000
	}
	_ = t.histogram.RecordValue(ms)

	t.slowest = append(t.slowest, TestTiming{Title: title, Duration: d})
	sort.SliceStable(t.slowest, func(i, j int) bool {
		return t.slowest[i].Duration > t.slowest[j].Duration
	})
	if len(t.slowest) > t.limit {
		t.slowest = t.slowest[:t.limit]
	}
}

// Count returns the number of recorded durations.
func (t *Timings) Count() int64 {
	return t.histogram.TotalCount()
}

// Percentile returns the duration at the given percentile (0-100).
func (t *Timings) Percentile(p float64) time.Duration {
	return time.Duration(t.histogram.ValueAtQuantile(p)) * time.Millisecond
}

// Max returns the longest recorded duration.
func (t *Timings) Max() time.Duration {
	return time.Duration(t.histogram.Max()) * time.Millisecond
}

// Slowest returns up to n of the slowest recorded tests, longest first.
func (t *Timings) Slowest(n int) []TestTiming {
	if n > len(t.slowest) {
		n = len(t.slowest)
	}
	out := make([]TestTiming, n)
	copy(out, t.slowest[:n])
	return out
}
