// Package render provides the terminal formatting helpers used by the
// reporter: truncation, padding, wrapping, duration and clock formatting,
// box drawing, and the run summary table.
package render
