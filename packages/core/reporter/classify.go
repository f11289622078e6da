package reporter

import "github.com/abdul-hamid-achik/specview/packages/core/events"

// Bucket is the counted outcome of a finalized test.
type Bucket int

const (
	BucketPassed Bucket = iota
	BucketSkipped
	BucketPending
	BucketFailed
)

func (b Bucket) String() string {
	switch b {
	case BucketPassed:
		return "passed"
	case BucketSkipped:
		return "skipped"
	case BucketPending:
		return "pending"
	default:
		return "failed"
	}
}

// PendingSplitPolicy controls whether fixme-annotated skips get their own
// pending bucket or fold into skipped.
type PendingSplitPolicy int

const (
	PendingSplitNone PendingSplitPolicy = iota
	FixmeAsPending
)

// AnnotationFixme marks a test as known broken and intentionally not run.
const AnnotationFixme = "fixme"

// Verdict is the full classification of one finalized attempt.
type Verdict struct {
	Bucket Bucket
	// Flaky marks a pass that failed on an earlier attempt. It is extra
	// information on top of BucketPassed, not a bucket of its own.
	Flaky bool
	// Suffix is appended verbatim to the rendered test line.
	Suffix string
	// UnexpectedPass marks a failure caused by passing when failure was
	// expected.
	UnexpectedPass bool
}

// finalAttempt reports whether this result determines the test's counted
// outcome. Intermediate retry attempts must not touch any counter.
func finalAttempt(t *events.Test, r *events.Result) bool {
	if r.Retry >= t.Retries {
		return true
	}
	if t.Outcome == events.OutcomeExpected {
		return true
	}
	return !r.Status.Failure() && t.Outcome != events.OutcomeUnexpected
}

// classify maps a finalized attempt onto exactly one bucket. Rules apply in
// priority order: expected, flaky, skipped/pending, failed.
func classify(t *events.Test, r *events.Result, pending PendingSplitPolicy) Verdict {
	switch {
	case t.Outcome == events.OutcomeExpected:
		v := Verdict{Bucket: BucketPassed}
		if r.Status.Failure() {
			v.Suffix = " (expected failure)"
		}
		return v

	case t.Outcome == events.OutcomeFlaky:
		return Verdict{Bucket: BucketPassed, Flaky: true}

	case r.Status == events.StatusSkipped:
		if pending == FixmeAsPending && t.HasAnnotation(AnnotationFixme) {
			return Verdict{Bucket: BucketPending}
		}
		return Verdict{Bucket: BucketSkipped}

	default:
		return Verdict{
			Bucket:         BucketFailed,
			UnexpectedPass: r.Status == events.StatusPassed,
		}
	}
}
