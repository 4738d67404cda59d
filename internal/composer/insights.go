package composer

import "strings"

// insightsMarker starts the internal block of a drafted reply. The marker is
// matched at the beginning of a line, after leading whitespace.
const insightsMarker = "INSIGHTS:"

// SplitInsights splits raw draft text into the public reply and the content
// of a trailing INSIGHTS block. Everything from the marker line onward
// belongs to the insights; text on the marker line after the colon is kept.
// Text without a marker is returned whole with empty insights.
func SplitInsights(raw string) (reply, insights string) {
	lines := strings.Split(raw, "\n")

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), insightsMarker)
		if !ok {
			continue
		}

		reply = strings.TrimSpace(strings.Join(lines[:i], "\n"))
		parts := append([]string{rest}, lines[i+1:]...)
		insights = strings.TrimSpace(strings.Join(parts, "\n"))
		return reply, insights
	}

	return strings.TrimSpace(raw), ""
}
