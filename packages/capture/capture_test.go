package capture

import (
	"testing"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFiltersByLevel(t *testing.T) {
	r := NewPageRecorder()
	r.Console("log", "just chatter")
	r.Console("info", "still chatter")
	r.Console(LevelWarning, "deprecated API")
	r.Console(LevelError, "uncaught TypeError")

	atts := r.Attachments()
	require.Len(t, atts, 1)
	assert.Equal(t, events.AttachConsoleErrors, atts[0].Name)
	assert.Equal(t, "[warning] deprecated API\n[error] uncaught TypeError", string(atts[0].Body))
}

func TestResponseKeepsOnlyFailures(t *testing.T) {
	r := NewPageRecorder()
	r.Response("https://api.example.com/ok", 200)
	r.Response("https://api.example.com/redirect", 302)
	r.Response("https://api.example.com/missing", 404)
	r.Response("https://api.example.com/broken", 500)

	atts := r.Attachments()
	require.Len(t, atts, 1)
	assert.Equal(t, events.AttachNetworkFailures, atts[0].Name)
	assert.Equal(t, "404 https://api.example.com/missing\n500 https://api.example.com/broken", string(atts[0].Body))
}

func TestRequestFailed(t *testing.T) {
	r := NewPageRecorder()
	r.RequestFailed("https://api.example.com/timeout", "net::ERR_TIMED_OUT")
	r.RequestFailed("https://api.example.com/unknown", "")

	atts := r.Attachments()
	require.Len(t, atts, 1)
	assert.Equal(t,
		"FAILED https://api.example.com/timeout (net::ERR_TIMED_OUT)\nFAILED https://api.example.com/unknown (request failed)",
		string(atts[0].Body))
}

func TestEmptyRecorderReturnsNil(t *testing.T) {
	r := NewPageRecorder()
	assert.Nil(t, r.Attachments())

	r.Console("log", "ignored")
	r.Response("https://example.com", 204)
	assert.Nil(t, r.Attachments())
}

func TestBothSectionsPresent(t *testing.T) {
	r := NewPageRecorder()
	r.Console(LevelError, "boom")
	r.Response("https://example.com", 503)

	atts := r.Attachments()
	require.Len(t, atts, 2)
	assert.Equal(t, events.AttachConsoleErrors, atts[0].Name)
	assert.Equal(t, events.AttachNetworkFailures, atts[1].Name)
	assert.Equal(t, "text/plain", atts[0].ContentType)
}

func TestReset(t *testing.T) {
	r := NewPageRecorder()
	r.Console(LevelError, "boom")
	r.RequestFailed("https://example.com", "aborted")
	r.Reset()
	assert.Nil(t, r.Attachments())
}
