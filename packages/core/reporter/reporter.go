package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
	"github.com/abdul-hamid-achik/specview/packages/render"
	"github.com/abdul-hamid-achik/specview/packages/stats"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// EmptySectionPolicy controls how a flushed file with no failures renders
// its failures section.
type EmptySectionPolicy int

const (
	// EmptySectionOmit drops the section entirely.
	EmptySectionOmit EmptySectionPolicy = iota
	// EmptySectionPlaceholder prints an explicit "none" in the success color.
	EmptySectionPlaceholder
)

// DefaultMinFileColumn is the floor for the summary table's filename column.
const DefaultMinFileColumn = 25

// commonDirPlaceholder stands in when spec files share no directory.
const commonDirPlaceholder = "…"

// Reporter consumes host lifecycle callbacks and writes the streaming
// report. Construct one per run; callbacks must be delivered serially.
type Reporter struct {
	writer        io.Writer
	noColor       bool
	verbose       bool
	emptySections EmptySectionPolicy
	pendingSplit  PendingSplitPolicy
	minFileColumn int
	now           func() time.Time

	run        *RunState
	timings    *stats.Timings
	runID      string
	baseDir    string
	projects   string
	fileColumn int
	began      bool
	ended      bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
	dim    *color.Color
}

// Option configures the reporter.
type Option func(*Reporter)

// WithWriter sets the output stream.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		r.writer = w
	}
}

// WithNoColor disables colored output.
func WithNoColor(noColor bool) Option {
	return func(r *Reporter) {
		r.noColor = noColor
	}
}

// WithVerbose enables the timing summary at run end.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithEmptySectionPolicy sets how empty failure sections render.
func WithEmptySectionPolicy(p EmptySectionPolicy) Option {
	return func(r *Reporter) {
		r.emptySections = p
	}
}

// WithPendingSplitPolicy sets how fixme-annotated skips are bucketed.
func WithPendingSplitPolicy(p PendingSplitPolicy) Option {
	return func(r *Reporter) {
		r.pendingSplit = p
	}
}

// WithMinFileColumn sets the floor for the filename column width.
func WithMinFileColumn(width int) Option {
	return func(r *Reporter) {
		if width > 0 {
			r.minFileColumn = width
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a reporter with fresh run state.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		writer:        os.Stdout,
		pendingSplit:  FixmeAsPending,
		minFileColumn: DefaultMinFileColumn,
		now:           time.Now,
		run:           NewRunState(),
		timings:       stats.NewTimings(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.noColor {
		color.NoColor = true
	}
	r.green = color.New(color.FgGreen)
	r.red = color.New(color.FgRed)
	r.yellow = color.New(color.FgYellow)
	r.cyan = color.New(color.FgCyan)
	r.bold = color.New(color.Bold)
	r.dim = color.New(color.Faint)

	return r
}

// Run exposes the accumulated state, mainly for the CLI exit code and for
// tests.
func (r *Reporter) Run() *RunState {
	return r.run
}

// HasFailures reports whether any test failed.
func (r *Reporter) HasFailures() bool {
	return r.run.Failed > 0
}

// Ended reports whether OnEnd has run.
func (r *Reporter) Ended() bool {
	return r.ended
}

// FileColumn returns the computed filename column width; zero before
// OnBegin.
func (r *Reporter) FileColumn() int {
	return r.fileColumn
}

// OnBegin fixes the run shape: total count, spec order, per-file expected
// totals, the project and base-path display strings, and the filename
// column width. It emits the run-start banner immediately.
func (r *Reporter) OnBegin(cfg events.RunConfig, tests []*events.Test) {
	if r.began {
		return
	}
	r.began = true
	r.run.StartTime = r.now()
	r.run.TotalTests = len(tests)

	r.runID = cfg.RunID
	if r.runID == "" {
		r.runID = uuid.New().String()
	}

	for _, t := range tests {
		ss := r.run.AddSpec(t.Location.File)
		ss.Total++
	}

	r.baseDir = commonDir(r.run.SpecOrder)
	r.projects = activeProjects(cfg.Projects, tests)

	r.fileColumn = r.minFileColumn
	for _, file := range r.run.SpecOrder {
		if n := len([]rune(r.displayName(file))); n > r.fileColumn {
			r.fileColumn = n
		}
	}

	w := r.writer
	fmt.Fprintln(w)
	r.bold.Fprintf(w, "Running %d tests in %d files\n", r.run.TotalTests, len(r.run.SpecOrder))
	if r.projects != "" {
		fmt.Fprintf(w, "Projects: ")
		r.cyan.Fprintf(w, "%s\n", r.projects)
	}
	r.dim.Fprintf(w, "From: %s\n", r.baseDir)
	r.dim.Fprintf(w, "Run:  %s\n", r.runID)
}

// OnTestBegin records the first-seen timestamp for the test's file. Repeat
// begins for the same file are no-ops.
func (r *Reporter) OnTestBegin(t *events.Test) {
	if !r.began || r.ended || t == nil {
		return
	}
	ss := r.run.Spec(t.Location.File)
	if ss == nil {
		return
	}
	if ss.StartedAt.IsZero() {
		ss.StartedAt = r.now()
	}
}

// OnTestEnd handles one attempt's result. Intermediate retry attempts are
// ignored; a final attempt is classified, counted, rendered as a line, and
// its artifacts harvested. Completing the file flushes it immediately.
func (r *Reporter) OnTestEnd(t *events.Test, res *events.Result) {
	if !r.began || r.ended || t == nil || res == nil {
		return
	}
	ss := r.run.Spec(t.Location.File)
	if ss == nil {
		// Test from a file we never discovered. Not a fault.
		return
	}
	if !finalAttempt(t, res) {
		return
	}
	if ss.Flushed || ss.Completed >= ss.Total {
		return
	}

	v := classify(t, res, r.pendingSplit)
	ss.Completed++
	switch v.Bucket {
	case BucketPassed:
		ss.Passing++
		r.run.Passed++
		if v.Flaky {
			ss.Flaky++
			r.run.Flaky++
		}
	case BucketSkipped:
		ss.Skipped++
		r.run.Skipped++
	case BucketPending:
		ss.Pending++
		r.run.Pending++
	case BucketFailed:
		ss.Failing++
		r.run.Failed++
		r.run.Failures = append(r.run.Failures, r.failureRecord(t, res, v))
	}

	ss.TestLines = append(ss.TestLines, r.testLine(t, res, v))
	harvestArtifacts(ss, res)
	r.timings.Record(strings.Join(t.TitlePath, TitleSeparator), res.Duration)

	if ss.Done() {
		r.flushSpec(ss)
	}
}

// OnEnd flushes every spec that never completed, then renders the summary
// table and the status line. Calling it twice is harmless.
func (r *Reporter) OnEnd(status events.RunStatus) {
	if !r.began || r.ended {
		return
	}
	r.ended = true

	for _, file := range r.run.SpecOrder {
		if ss := r.run.Spec(file); ss != nil && !ss.Flushed {
			r.flushSpec(ss)
		}
	}

	elapsed := r.now().Sub(r.run.StartTime)
	w := r.writer

	fmt.Fprintln(w)
	r.bold.Fprintln(w, "TEST RUN SUMMARY")
	fmt.Fprintln(w, strings.Repeat("─", 40))

	rows := make([]render.SpecRow, 0, len(r.run.SpecOrder))
	for _, file := range r.run.SpecOrder {
		ss := r.run.Spec(file)
		rows = append(rows, render.SpecRow{
			Name:    r.displayName(file),
			Clock:   render.FormatClock(ss.Elapsed()),
			Total:   ss.Total,
			Passed:  ss.Passing,
			Failing: ss.Failing,
			Flaky:   ss.Flaky,
			Pending: ss.Pending,
			Skipped: ss.Skipped,
		})
	}
	footer := render.SpecRow{
		Clock:   render.FormatClock(elapsed),
		Total:   r.run.TotalTests,
		Passed:  r.run.Passed,
		Failing: r.run.Failed,
		Flaky:   r.run.Flaky,
		Pending: r.run.Pending,
		Skipped: r.run.Skipped,
	}
	render.SummaryTable(w, rows, footer, r.fileColumn)

	if r.verbose && r.timings.Count() > 0 {
		r.printTimings()
	}

	fmt.Fprintln(w)
	if status == events.RunInterrupted {
		r.yellow.Fprintln(w, "Run was interrupted.")
	}
	if r.run.Failed > 0 {
		r.red.Fprintf(w, "%s %d of %d tests failed (%s)\n",
			render.IconFail, r.run.Failed, r.run.TotalTests, render.FormatClock(elapsed))
	} else {
		r.green.Fprintf(w, "%s All tests passed (%d tests in %s)\n",
			render.IconPass, r.run.TotalTests, render.FormatClock(elapsed))
	}
}

// flushSpec prints a file's complete block. It runs at most once per file:
// eagerly when the last expected test finalizes, or from OnEnd for files
// that never got there.
func (r *Reporter) flushSpec(ss *SpecState) {
	if ss.Flushed {
		return
	}
	ss.Flushed = true
	if ss.EndedAt.IsZero() {
		ss.EndedAt = r.now()
	}

	w := r.writer
	fmt.Fprintln(w)
	r.bold.Fprintf(w, "%s", r.displayName(ss.File))
	fmt.Fprintf(w, " (%s)\n", render.FormatClock(ss.Elapsed()))

	for _, line := range ss.TestLines {
		fmt.Fprintln(w, line)
	}

	counts := fmt.Sprintf("passed %d | failed %d | flaky %d | pending %d | skipped %d",
		ss.Passing, ss.Failing, ss.Flaky, ss.Pending, ss.Skipped)
	progress := fmt.Sprintf("%d/%d tests done in %s", ss.Completed, ss.Total, render.FormatClock(ss.Elapsed()))
	boxColor := r.green
	if ss.Failing > 0 {
		boxColor = r.red
	}
	for _, line := range render.Box([]string{progress, counts}) {
		boxColor.Fprintf(w, "  %s\n", line)
	}

	r.printFailures(ss)
	r.printArtifacts(ss)
}

func (r *Reporter) printFailures(ss *SpecState) {
	w := r.writer
	records := r.run.FailuresFor(ss.File)
	if len(records) == 0 {
		if r.emptySections == EmptySectionPlaceholder {
			fmt.Fprintf(w, "  Failures: ")
			r.green.Fprintln(w, "none")
		}
		return
	}

	fmt.Fprintln(w)
	r.red.Fprintln(w, "  Failures:")

	n := 0
	for _, g := range GroupFailures(records) {
		switch {
		case len(g.Records) == 1:
			n++
			fr := g.Records[0]
			r.printFailureBlock(n, strings.Join(fr.TitlePath, TitleSeparator), fr)

		case g.SameMessage():
			// One shared stack for the whole group; other configurations
			// surface only their own diagnostics.
			n++
			r.printFailureBlock(n, g.Key, g.Records[0])
			for _, fr := range g.Records[1:] {
				if fr.HasAttachments() {
					r.printAttachmentsOnly(fr)
				}
			}

		default:
			for _, fr := range g.Records {
				n++
				title := g.Key
				if cfg := fr.ConfigSegment(); cfg != "" {
					title = fmt.Sprintf("[%s] %s", cfg, g.Key)
				}
				r.printFailureBlock(n, title, fr)
			}
		}
	}
}

func (r *Reporter) printFailureBlock(n int, title string, fr *FailureRecord) {
	w := r.writer
	fmt.Fprintln(w)
	r.red.Fprintf(w, "    %d) %s\n", n, title)
	if fr.UnexpectedPass {
		r.red.Fprintln(w, "       passed unexpectedly")
	}
	fmt.Fprintf(w, "       %s\n", fr.Message())
	if fr.Err != nil {
		for _, frame := range FilterStack(fr.Err.Stack) {
			r.dim.Fprintf(w, "         %s\n", frame)
		}
	}
	r.printDiagnostics(fr)
}

// printAttachmentsOnly renders a secondary sub-block for a configuration
// whose error was already shown once for the group.
func (r *Reporter) printAttachmentsOnly(fr *FailureRecord) {
	w := r.writer
	fmt.Fprintln(w)
	r.yellow.Fprintf(w, "       [%s]\n", fr.ConfigSegment())
	r.printDiagnostics(fr)
}

func (r *Reporter) printDiagnostics(fr *FailureRecord) {
	r.printDiagnosticSection("Console errors", fr.ConsoleErrors)
	r.printDiagnosticSection("Network failures", fr.NetworkFailures)
}

func (r *Reporter) printDiagnosticSection(label, text string) {
	w := r.writer
	if text == "" {
		if r.emptySections == EmptySectionPlaceholder {
			fmt.Fprintf(w, "       %s: ", label)
			r.green.Fprintln(w, "none")
		}
		return
	}
	r.cyan.Fprintf(w, "       %s:\n", label)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "         %s\n", line)
	}
}

func (r *Reporter) printArtifacts(ss *SpecState) {
	w := r.writer
	if len(ss.ScreenshotPaths) > 0 {
		fmt.Fprintln(w)
		r.cyan.Fprintln(w, "  Screenshots:")
		for _, p := range sortedPaths(ss.ScreenshotPaths) {
			fmt.Fprintf(w, "    %s\n", p)
		}
	}
	if len(ss.VideoPaths) > 0 {
		fmt.Fprintln(w)
		r.cyan.Fprintln(w, "  Videos:")
		for _, p := range sortedPaths(ss.VideoPaths) {
			fmt.Fprintf(w, "    %s\n", p)
		}
	}
}

func (r *Reporter) printTimings() {
	w := r.writer
	fmt.Fprintln(w)
	r.bold.Fprintln(w, "SLOWEST TESTS")
	for _, tt := range r.timings.Slowest(5) {
		fmt.Fprintf(w, "  %-8s %s\n", render.FormatDuration(tt.Duration), tt.Title)
	}
	fmt.Fprintf(w, "Timing: p50 %s | p95 %s | p99 %s | max %s\n",
		render.FormatDuration(r.timings.Percentile(50)),
		render.FormatDuration(r.timings.Percentile(95)),
		render.FormatDuration(r.timings.Percentile(99)),
		render.FormatDuration(r.timings.Max()))
}

func (r *Reporter) testLine(t *events.Test, res *events.Result, v Verdict) string {
	var icon string
	switch v.Bucket {
	case BucketFailed:
		icon = r.red.Sprint(render.IconFail)
	case BucketSkipped:
		icon = r.yellow.Sprint(render.IconSkip)
	case BucketPending:
		icon = r.yellow.Sprint(render.IconPending)
	default:
		icon = r.green.Sprint(render.IconPass)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s ", icon)
	if p := t.ProjectName(); p != "" {
		b.WriteString(r.dim.Sprintf("[%s] ", p))
		b.WriteString(strings.Join(t.TitlePath[1:], TitleSeparator))
	} else {
		b.WriteString(strings.Join(t.TitlePath, TitleSeparator))
	}
	fmt.Fprintf(&b, " (%s)", render.FormatDuration(res.Duration))
	if v.Flaky {
		b.WriteString(r.yellow.Sprint(" (flaky)"))
	}
	b.WriteString(v.Suffix)
	return b.String()
}

func (r *Reporter) failureRecord(t *events.Test, res *events.Result, v Verdict) *FailureRecord {
	fr := &FailureRecord{
		File:           t.Location.File,
		TitlePath:      append([]string(nil), t.TitlePath...),
		Err:            res.Error,
		UnexpectedPass: v.UnexpectedPass,
	}
	fr.ConsoleErrors = attachmentText(res, events.AttachConsoleErrors)
	fr.NetworkFailures = attachmentText(res, events.AttachNetworkFailures)
	return fr
}

func (r *Reporter) displayName(file string) string {
	if r.baseDir != "" && r.baseDir != commonDirPlaceholder {
		if rel, err := filepath.Rel(r.baseDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return file
}

// attachmentText resolves a named text attachment, preferring the in-memory
// body over a file path. Unreadable paths degrade to an empty section.
func attachmentText(res *events.Result, name string) string {
	a, ok := res.Attachment(name)
	if !ok {
		return ""
	}
	if len(a.Body) > 0 {
		return string(a.Body)
	}
	if a.Path != "" {
		if data, err := os.ReadFile(a.Path); err == nil {
			return string(data)
		}
	}
	return ""
}

// harvestArtifacts folds video and screenshot paths into the per-file sets,
// collapsing duplicates from retried attempts.
func harvestArtifacts(ss *SpecState, res *events.Result) {
	for _, a := range res.Attachments {
		if a.Path == "" {
			continue
		}
		path := filepath.Clean(a.Path)
		switch a.Name {
		case events.AttachVideo:
			ss.VideoPaths[path] = struct{}{}
		case events.AttachScreenshot:
			ss.ScreenshotPaths[path] = struct{}{}
		}
	}
}

// activeProjects builds the deduplicated display list of configurations
// that actually have tests scheduled.
func activeProjects(projects []events.Project, tests []*events.Test) string {
	scheduled := make(map[string]bool)
	for _, t := range tests {
		if p := t.ProjectName(); p != "" {
			scheduled[p] = true
		}
	}

	seen := make(map[string]bool)
	var names []string
	for _, p := range projects {
		if p.Name == "" || seen[p.Name] || !scheduled[p.Name] {
			continue
		}
		seen[p.Name] = true
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

// commonDir returns the longest directory shared by every file, or the
// placeholder when they share none.
func commonDir(files []string) string {
	if len(files) == 0 {
		return commonDirPlaceholder
	}
	dir := filepath.Dir(files[0])
	for _, f := range files[1:] {
		d := filepath.Dir(f)
		for !within(d, dir) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return commonDirPlaceholder
			}
			dir = parent
		}
	}
	if dir == "." || dir == string(filepath.Separator) {
		return commonDirPlaceholder
	}
	return dir
}

func within(dir, root string) bool {
	if dir == root {
		return true
	}
	return strings.HasPrefix(dir, root+string(filepath.Separator))
}

func sortedPaths(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
