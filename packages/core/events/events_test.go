package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFailure(t *testing.T) {
	assert.True(t, StatusFailed.Failure())
	assert.True(t, StatusTimedOut.Failure())
	assert.True(t, StatusInterrupted.Failure())
	assert.False(t, StatusPassed.Failure())
	assert.False(t, StatusSkipped.Failure())
}

func TestTitleAndProjectName(t *testing.T) {
	full := &Test{TitlePath: []string{"chromium", "login", "works"}}
	assert.Equal(t, "works", full.Title())
	assert.Equal(t, "chromium", full.ProjectName())

	bare := &Test{TitlePath: []string{"works"}}
	assert.Equal(t, "works", bare.Title())
	assert.Equal(t, "", bare.ProjectName(), "a lone segment is a title, not a project")

	empty := &Test{}
	assert.Equal(t, "", empty.Title())
	assert.Equal(t, "", empty.ProjectName())
}

func TestHasAnnotation(t *testing.T) {
	test := &Test{Annotations: []Annotation{
		{Type: "slow"},
		{Type: "fixme", Description: "flaky on CI"},
	}}
	assert.True(t, test.HasAnnotation("fixme"))
	assert.True(t, test.HasAnnotation("slow"))
	assert.False(t, test.HasAnnotation("skip"))
}

func TestResultAttachmentLookup(t *testing.T) {
	res := &Result{Attachments: []Attachment{
		{Name: AttachScreenshot, Path: "a.png"},
		{Name: AttachScreenshot, Path: "b.png"},
		{Name: AttachVideo, Path: "run.webm"},
	}}

	a, ok := res.Attachment(AttachScreenshot)
	assert.True(t, ok)
	assert.Equal(t, "a.png", a.Path, "first match wins")

	_, ok = res.Attachment(AttachConsoleErrors)
	assert.False(t, ok)
}
