// Package cmd implements the specview CLI commands using Cobra.
//
// Available commands:
//   - replay: Render a report from a recorded run event stream
//   - tail: Follow a live event stream and render incrementally
//   - validate: Check an event stream against the schema without rendering
//   - version: Show specview version information
//
// The CLI supports flags for color, verbosity, and the report's divergent
// presentation policies.
package cmd
