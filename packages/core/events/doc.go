// Package events defines the data shapes specview consumes from the host
// test framework: projects, discovered tests, per-attempt results, and the
// named attachments that carry diagnostic artifacts.
//
// The reporter never constructs these values itself; they arrive through
// the lifecycle callbacks or are decoded from a recorded event stream.
package events
