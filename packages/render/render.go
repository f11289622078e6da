package render

import (
	"fmt"
	"strings"
	"time"
)

// Result line icons.
const (
	IconPass    = "✓"
	IconFail    = "✗"
	IconSkip    = "-"
	IconPending = "!"
)

// Ellipsis marks a truncated name.
const Ellipsis = "…"

// Truncate shortens s to exactly width runes, replacing the tail with a
// single ellipsis when it does not fit. Strings at or under the width are
// returned unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return string(runes[:width-1]) + Ellipsis
}

// Pad right-pads s with spaces to width runes. Longer strings are returned
// unchanged.
func Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Wrap breaks s into lines of at most width runes, splitting on spaces.
// Words longer than the width are emitted on their own line unbroken.
func Wrap(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// FormatClock renders elapsed wall-clock time as MM:SS, flooring to whole
// seconds and clamping negative durations to zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatDuration formats a test duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

// Box wraps the given lines in a light box. Lines must be free of ANSI
// escapes; the caller colors the returned lines as a whole.
func Box(lines []string) []string {
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, "┌"+strings.Repeat("─", width+2)+"┐")
	for _, line := range lines {
		out = append(out, "│ "+Pad(line, width)+" │")
	}
	out = append(out, "└"+strings.Repeat("─", width+2)+"┘")
	return out
}
