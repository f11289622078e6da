package events

import "time"

// Status is the raw result status of a single test attempt.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusTimedOut    Status = "timedOut"
	StatusSkipped     Status = "skipped"
	StatusInterrupted Status = "interrupted"
)

// Failure reports whether the status is failure-shaped. Interruptions are
// delivered by the host as failures and are treated the same way.
func (s Status) Failure() bool {
	return s == StatusFailed || s == StatusTimedOut || s == StatusInterrupted
}

// Outcome is the semantic classification of a test relative to its
// expectations, distinct from the raw attempt status.
type Outcome string

const (
	OutcomeExpected   Outcome = "expected"
	OutcomeUnexpected Outcome = "unexpected"
	OutcomeFlaky      Outcome = "flaky"
	OutcomeSkipped    Outcome = "skipped"
)

// RunStatus is the overall status the host reports at the end of a run.
type RunStatus string

const (
	RunPassed      RunStatus = "passed"
	RunFailed      RunStatus = "failed"
	RunInterrupted RunStatus = "interrupted"
)

// Project describes one run configuration (typically one browser).
type Project struct {
	Name     string
	Browser  string
	Headless bool
}

// Location is a test's position in its source file.
type Location struct {
	File   string
	Line   int
	Column int
}

// Annotation is an author-supplied marker on a test. The "fixme" type marks
// a test as known broken and intentionally not run.
type Annotation struct {
	Type        string
	Description string
}

// Test is one discoverable test as reported by the host framework. The
// first TitlePath segment is the project (configuration) name when the run
// has named projects; the last segment is the test title.
type Test struct {
	ID          string
	Location    Location
	TitlePath   []string
	Retries     int
	Outcome     Outcome
	Annotations []Annotation
}

// Title returns the innermost title segment.
func (t *Test) Title() string {
	if len(t.TitlePath) == 0 {
		return ""
	}
	return t.TitlePath[len(t.TitlePath)-1]
}

// ProjectName returns the outermost (configuration) title segment, or ""
// for a run without named projects.
func (t *Test) ProjectName() string {
	if len(t.TitlePath) < 2 {
		return ""
	}
	return t.TitlePath[0]
}

// HasAnnotation reports whether the test carries an annotation of the given
// type.
func (t *Test) HasAnnotation(typ string) bool {
	for _, a := range t.Annotations {
		if a.Type == typ {
			return true
		}
	}
	return false
}

// Reserved attachment names. The capture collaborator publishes the first
// two; the host framework publishes screenshots and videos.
const (
	AttachConsoleErrors   = "console-errors"
	AttachNetworkFailures = "network-failures"
	AttachScreenshot      = "screenshot"
	AttachVideo           = "video"
)

// Attachment is a named artifact on a test result. Either Path or Body may
// be set; Body wins when both are present.
type Attachment struct {
	Name        string
	ContentType string
	Path        string
	Body        []byte
}

// TestError carries the failure payload of an attempt.
type TestError struct {
	Message string
	Stack   string
}

// Result is the outcome of a single attempt of a test.
type Result struct {
	Status      Status
	Duration    time.Duration
	Retry       int
	Error       *TestError
	Attachments []Attachment
}

// Attachment returns the first attachment with the given name.
func (r *Result) Attachment(name string) (Attachment, bool) {
	for _, a := range r.Attachments {
		if a.Name == name {
			return a, true
		}
	}
	return Attachment{}, false
}

// RunConfig is the run descriptor handed to the reporter at begin time.
type RunConfig struct {
	RunID    string
	Projects []Project
	Workers  int
}
