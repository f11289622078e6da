package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits exactly", "login.spec.ts", 13, "login.spec.ts"},
		{"under width", "a.ts", 25, "a.ts"},
		{"over width", "a-rather-long-name.spec.ts", 10, "a-rather-" + Ellipsis},
		{"width one", "abc", 1, Ellipsis},
		{"width zero", "abc", 0, ""},
		{"multibyte runes", "tëst-fïle.spec.ts", 6, "tëst-" + Ellipsis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.LessOrEqual(t, len([]rune(got)), tt.width)
			}
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcdef", Pad("abcdef", 3))
	assert.Equal(t, "ëé ", Pad("ëé", 3), "pads by rune count, not bytes")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, Wrap("one two three", 8))
	assert.Equal(t, []string{"supercalifragilistic"}, Wrap("supercalifragilistic", 5))
	assert.Equal(t, []string{""}, Wrap("", 10))
	assert.Equal(t, []string{"a b c"}, Wrap("a b c", 0))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:00", FormatClock(-3*time.Second))
	assert.Equal(t, "00:59", FormatClock(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "01:05", FormatClock(65*time.Second))
	assert.Equal(t, "12:34", FormatClock(12*time.Minute+34*time.Second))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m", FormatDuration(2*time.Minute))
	assert.Equal(t, "2m 05s", FormatDuration(2*time.Minute+5*time.Second))
}

func TestBox(t *testing.T) {
	lines := Box([]string{"short", "a longer line"})
	assert.Len(t, lines, 4)
	assert.Equal(t, "┌───────────────┐", lines[0])
	assert.Equal(t, "│ short         │", lines[1])
	assert.Equal(t, "│ a longer line │", lines[2])
	assert.Equal(t, "└───────────────┘", lines[3])

	// Every line is the same rune width.
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)))
	}
}

func TestSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []SpecRow{
		{Name: "a.spec.ts", Clock: "00:03", Total: 2, Passed: 2},
		{Name: "b.spec.ts", Clock: "00:07", Total: 3, Passed: 1, Failing: 2},
	}
	footer := SpecRow{Clock: "00:10", Total: 5, Passed: 3, Failing: 2}
	SummaryTable(&buf, rows, footer, 25)

	out := buf.String()
	assert.Contains(t, out, "a.spec.ts")
	assert.Contains(t, out, "b.spec.ts")
	assert.Contains(t, out, IconPass)
	assert.Contains(t, out, IconFail)
	assert.Contains(t, out, "00:10")
}

func TestSpecRowIcon(t *testing.T) {
	assert.Equal(t, IconPass, SpecRow{Passed: 1}.Icon())
	assert.Equal(t, IconFail, SpecRow{Passed: 1, Failing: 1}.Icon())
	assert.Equal(t, IconPass, SpecRow{}.Icon())
}

func TestTruncateNeverExceedsWidth(t *testing.T) {
	in := strings.Repeat("x", 100)
	for w := 1; w <= 30; w++ {
		assert.Equal(t, w, len([]rune(Truncate(in, w))))
	}
}
