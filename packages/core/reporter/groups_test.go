package reporter

import (
	"testing"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failure(file string, titlePath []string, message string) *FailureRecord {
	return &FailureRecord{
		File:      file,
		TitlePath: titlePath,
		Err:       &events.TestError{Message: message},
	}
}

func TestGroupFailuresByConfigAgnosticKey(t *testing.T) {
	records := []*FailureRecord{
		failure("a.ts", []string{"chromium", "login", "works"}, "boom"),
		failure("a.ts", []string{"firefox", "login", "works"}, "boom"),
		failure("a.ts", []string{"chromium", "logout", "works"}, "other"),
	}

	groups := GroupFailures(records)
	require.Len(t, groups, 2)
	assert.Equal(t, "login > works", groups[0].Key)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "logout > works", groups[1].Key)
	assert.Len(t, groups[1].Records, 1)
}

func TestGroupFailuresPreservesFirstSeenOrder(t *testing.T) {
	records := []*FailureRecord{
		failure("a.ts", []string{"firefox", "b", "t"}, "x"),
		failure("a.ts", []string{"chromium", "a", "t"}, "y"),
		failure("a.ts", []string{"chromium", "b", "t"}, "x"),
	}

	groups := GroupFailures(records)
	require.Len(t, groups, 2)
	assert.Equal(t, "b > t", groups[0].Key)
	assert.Equal(t, "a > t", groups[1].Key)
}

func TestSameMessage(t *testing.T) {
	same := &FailureGroup{Records: []*FailureRecord{
		failure("a.ts", []string{"chromium", "t"}, "boom"),
		failure("a.ts", []string{"firefox", "t"}, "boom"),
	}}
	assert.True(t, same.SameMessage())

	diff := &FailureGroup{Records: []*FailureRecord{
		failure("a.ts", []string{"chromium", "t"}, "boom"),
		failure("a.ts", []string{"firefox", "t"}, "crash"),
	}}
	assert.False(t, diff.SameMessage())

	// Missing payloads fall back to the placeholder and still compare.
	missing := &FailureGroup{Records: []*FailureRecord{
		{File: "a.ts", TitlePath: []string{"chromium", "t"}},
		{File: "a.ts", TitlePath: []string{"firefox", "t"}},
	}}
	assert.True(t, missing.SameMessage())
}

func TestGroupKeyWithoutConfigSegment(t *testing.T) {
	assert.Equal(t, "just a title", groupKey([]string{"just a title"}))
	assert.Equal(t, "", groupKey(nil))
}

func TestFilterStack(t *testing.T) {
	stack := "Error: boom\n" +
		"    at doLogin (e2e/login.spec.ts:12:5)\n" +
		"    at node_modules/framework/lib/run.js:88:1\n" +
		"    at node:internal/process/task_queues:95:5\n" +
		"  unrelated line\n" +
		"    at e2e/helpers.ts:3:1"

	frames := FilterStack(stack)
	assert.Equal(t, []string{
		"at doLogin (e2e/login.spec.ts:12:5)",
		"at e2e/helpers.ts:3:1",
	}, frames)
}

func TestFilterStackEmpty(t *testing.T) {
	assert.Empty(t, FilterStack(""))
	assert.Empty(t, FilterStack("Error: boom"))
}
