// Package reporter is the aggregation and rendering engine behind specview.
//
// A Reporter is constructed once per run and driven through four lifecycle
// callbacks: OnBegin, OnTestBegin, OnTestEnd, OnEnd. It turns the host's
// unordered, interleaved stream of per-test completions into per-file
// report blocks that are each printed exactly once: eagerly when a file's
// last test finishes, or at run end for files that never got there.
//
// All state lives on the Reporter; two reporters never share anything, so
// independent runs can be reported in the same process.
package reporter
