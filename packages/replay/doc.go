// Package replay decodes recorded run event streams and plays them through
// a reporting engine.
//
// A stream is JSON lines, one lifecycle event per line: a begin event with
// the run configuration and the full test list, testBegin/testEnd events
// keyed by test id, and a final end event. Streams can be validated against
// the embedded schema before playback.
package replay
