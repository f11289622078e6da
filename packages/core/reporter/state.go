package reporter

import (
	"time"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
)

// RunState holds every counter and per-file bucket for one report
// invocation. It is owned exclusively by its Reporter.
type RunState struct {
	TotalTests int
	Passed     int
	Failed     int
	Skipped    int
	Pending    int
	Flaky      int

	// SpecOrder fixes report ordering to first-seen order at begin time.
	SpecOrder []string
	SpecStats map[string]*SpecState

	Failures  []*FailureRecord
	StartTime time.Time
}

// NewRunState creates an empty run state.
func NewRunState() *RunState {
	return &RunState{
		SpecStats: make(map[string]*SpecState),
	}
}

// Spec returns the state for a file, or nil when the file was never
// discovered. Callers must treat nil as "ignore the event".
func (rs *RunState) Spec(file string) *SpecState {
	return rs.SpecStats[file]
}

// AddSpec registers a file the first time it is seen during begin and
// returns its state. Repeat calls return the existing state.
func (rs *RunState) AddSpec(file string) *SpecState {
	if ss, ok := rs.SpecStats[file]; ok {
		return ss
	}
	ss := &SpecState{
		File:            file,
		VideoPaths:      make(map[string]struct{}),
		ScreenshotPaths: make(map[string]struct{}),
	}
	rs.SpecOrder = append(rs.SpecOrder, file)
	rs.SpecStats[file] = ss
	return ss
}

// FailuresFor returns this file's failure records in first-seen order.
func (rs *RunState) FailuresFor(file string) []*FailureRecord {
	var out []*FailureRecord
	for _, fr := range rs.Failures {
		if fr.File == file {
			out = append(out, fr)
		}
	}
	return out
}

// SpecState is the per-file bucket. Completed never exceeds Total, and
// Passing+Failing+Pending+Skipped always equals Completed; Flaky is a
// sub-count of Passing.
type SpecState struct {
	File      string
	Total     int
	Completed int

	Passing int
	Failing int
	Flaky   int
	Pending int
	Skipped int

	StartedAt time.Time
	EndedAt   time.Time

	VideoPaths      map[string]struct{}
	ScreenshotPaths map[string]struct{}

	// TestLines accumulates pre-formatted display lines in completion
	// order, one per finalized test.
	TestLines []string

	Flushed bool
}

// Done reports whether every expected test has a finalized outcome.
func (ss *SpecState) Done() bool {
	return ss.Total > 0 && ss.Completed >= ss.Total
}

// Elapsed is the file's wall-clock span; zero until both ends are set.
func (ss *SpecState) Elapsed() time.Duration {
	if ss.StartedAt.IsZero() || ss.EndedAt.IsZero() {
		return 0
	}
	return ss.EndedAt.Sub(ss.StartedAt)
}

// FailureRecord captures one finalized failing attempt. Records are created
// once and never mutated.
type FailureRecord struct {
	File           string
	TitlePath      []string
	Err            *events.TestError
	UnexpectedPass bool

	ConsoleErrors   string
	NetworkFailures string
}

// ConfigSegment returns the outermost (configuration) title segment, or ""
// when the title path has no room for one.
func (fr *FailureRecord) ConfigSegment() string {
	if len(fr.TitlePath) < 2 {
		return ""
	}
	return fr.TitlePath[0]
}

// HasAttachments reports whether either diagnostic blob is present.
func (fr *FailureRecord) HasAttachments() bool {
	return fr.ConsoleErrors != "" || fr.NetworkFailures != ""
}

// Message returns the error message, or the placeholder when the failing
// attempt carried no error payload.
func (fr *FailureRecord) Message() string {
	if fr.Err == nil || fr.Err.Message == "" {
		return "no error message available"
	}
	return fr.Err.Message
}
