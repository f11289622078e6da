package capture

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
)

// Console message levels worth surfacing on failure.
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// PageRecorder accumulates diagnostic lines for a single test. It is not
// safe for concurrent use; the host delivers page events serially.
type PageRecorder struct {
	consoleLines []string
	networkLines []string
}

// NewPageRecorder creates an empty recorder.
func NewPageRecorder() *PageRecorder {
	return &PageRecorder{}
}

// Console records a console message. Levels other than error and warning
// are ignored.
func (r *PageRecorder) Console(level, text string) {
	if level != LevelError && level != LevelWarning {
		return
	}
	r.consoleLines = append(r.consoleLines, fmt.Sprintf("[%s] %s", level, text))
}

// Response records an HTTP response. Only 4xx and above are kept.
func (r *PageRecorder) Response(url string, status int) {
	if status < 400 {
		return
	}
	r.networkLines = append(r.networkLines, fmt.Sprintf("%d %s", status, url))
}

// RequestFailed records a request that never produced a response.
func (r *PageRecorder) RequestFailed(url, reason string) {
	if reason == "" {
		reason = "request failed"
	}
	r.networkLines = append(r.networkLines, fmt.Sprintf("FAILED %s (%s)", url, reason))
}

// Attachments returns the captured diagnostics as reserved named text
// attachments. Empty captures are omitted entirely; a recorder that saw
// nothing returns nil.
func (r *PageRecorder) Attachments() []events.Attachment {
	var out []events.Attachment
	if len(r.consoleLines) > 0 {
		out = append(out, events.Attachment{
			Name:        events.AttachConsoleErrors,
			ContentType: "text/plain",
			Body:        []byte(strings.Join(r.consoleLines, "\n")),
		})
	}
	if len(r.networkLines) > 0 {
		out = append(out, events.Attachment{
			Name:        events.AttachNetworkFailures,
			ContentType: "text/plain",
			Body:        []byte(strings.Join(r.networkLines, "\n")),
		})
	}
	return out
}

// Reset clears the recorder for reuse between tests.
func (r *PageRecorder) Reset() {
	r.consoleLines = nil
	r.networkLines = nil
}
