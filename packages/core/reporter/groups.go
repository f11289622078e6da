package reporter

import "strings"

// TitleSeparator joins title path segments for display.
const TitleSeparator = " > "

// FailureGroup collects the failure records that describe the same logical
// test across run configurations.
type FailureGroup struct {
	// Key is the configuration-agnostic title: the title path with the
	// outermost segment removed.
	Key     string
	Records []*FailureRecord
}

// SameMessage reports whether every record in the group carries an
// identical error message.
func (g *FailureGroup) SameMessage() bool {
	if len(g.Records) < 2 {
		return true
	}
	first := g.Records[0].Message()
	for _, fr := range g.Records[1:] {
		if fr.Message() != first {
			return false
		}
	}
	return true
}

// groupKey strips the configuration segment from a title path.
func groupKey(titlePath []string) string {
	if len(titlePath) < 2 {
		return strings.Join(titlePath, TitleSeparator)
	}
	return strings.Join(titlePath[1:], TitleSeparator)
}

// GroupFailures buckets records by grouping key, preserving the first-seen
// order of keys and of records within each key. It is a pure function over
// the accumulated records, independent of rendering.
func GroupFailures(records []*FailureRecord) []*FailureGroup {
	byKey := make(map[string]*FailureGroup)
	var order []*FailureGroup
	for _, fr := range records {
		key := groupKey(fr.TitlePath)
		g, ok := byKey[key]
		if !ok {
			g = &FailureGroup{Key: key}
			byKey[key] = g
			order = append(order, g)
		}
		g.Records = append(g.Records, fr)
	}
	return order
}

// FilterStack keeps only user-code call-stack frames: lines whose trimmed
// form starts with the conventional "at " frame marker and does not point
// into framework or runtime internals.
func FilterStack(stack string) []string {
	var frames []string
	for _, line := range strings.Split(stack, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "at ") {
			continue
		}
		if strings.Contains(trimmed, "node_modules/") || strings.Contains(trimmed, "node:") {
			continue
		}
		frames = append(frames, trimmed)
	}
	return frames
}
