// Package composer provides pure text operations for review and reply text.
// The operations are idempotent: applying them to their own output is a
// no-op.
package composer

import "strings"

// dashVariants are the leading dash characters accepted as an attribution
// marker. User agents and upstream sources are inconsistent about which
// dash they emit.
var dashVariants = []string{"—", "–", "-"}

// AttributeReview cleans raw review text and ensures it carries a single
// attribution line of the form "— <reviewer>, am <date>". Duplicate
// consecutive lines are collapsed and an existing attribution, exact or
// fuzzy, is never duplicated. Reviewer and date are both optional; when
// both are blank the text is only cleaned.
func AttributeReview(text, reviewer, date string) string {
	reviewer = strings.TrimSpace(reviewer)
	date = strings.TrimSpace(date)

	lines := cleanLines(text)

	if reviewer == "" && date == "" {
		return strings.Join(lines, "\n")
	}

	attribution := attributionLine(reviewer, date)

	if containsLine(lines, attribution) {
		return strings.Join(lines, "\n")
	}

	if hasFuzzyAttribution(lastN(lines, 3), reviewer, date) {
		return strings.Join(lines, "\n")
	}

	lines = append(lines, attribution)
	return strings.Join(lines, "\n")
}

// StripSignature removes a duplicated trailing signature line from a
// drafted reply. Trailing blank lines are dropped, then the last line is
// removed while the last two non-blank lines both equal the signature.
func StripSignature(text, signature string) string {
	lines := strings.Split(text, "\n")
	lines = trimTrailingBlank(lines)

	if strings.TrimSpace(signature) == "" {
		return strings.Join(lines, "\n")
	}

	for {
		last, prev := lastTwoNonBlank(lines)
		if last < 0 || prev < 0 {
			break
		}
		if lines[last] != signature || lines[prev] != signature {
			break
		}
		lines = trimTrailingBlank(lines[:last])
	}

	return strings.Join(lines, "\n")
}

// cleanLines splits text into lines, trims trailing whitespace per line,
// collapses runs of identical lines and drops a duplicated final line.
func cleanLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		if n := len(lines); n > 0 && lines[n-1] == line {
			continue
		}
		lines = append(lines, line)
	}

	for len(lines) >= 2 {
		last := lines[len(lines)-1]
		if strings.TrimSpace(last) == "" || last != lines[len(lines)-2] {
			break
		}
		lines = lines[:len(lines)-1]
	}

	return lines
}

// attributionLine builds the canonical attribution from the non-blank
// parts, e.g. "— Jane, am 2024-01-02", "— Jane" or "— am 2024-01-02".
func attributionLine(reviewer, date string) string {
	parts := make([]string, 0, 2)
	if reviewer != "" {
		parts = append(parts, reviewer)
	}
	if date != "" {
		parts = append(parts, "am "+date)
	}
	return "— " + strings.Join(parts, ", ")
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

// hasFuzzyAttribution reports whether any candidate line looks like an
// attribution for the given reviewer and date: it starts with a dash
// variant, contains the reviewer and, when a date is given, contains the
// date after the reviewer. Matching is case-insensitive.
func hasFuzzyAttribution(lines []string, reviewer, date string) bool {
	reviewer = strings.ToLower(reviewer)
	date = strings.ToLower(date)

	for _, line := range lines {
		rest, ok := cutDashPrefix(strings.TrimSpace(line))
		if !ok {
			continue
		}
		rest = strings.ToLower(rest)

		idx := 0
		if reviewer != "" {
			idx = strings.Index(rest, reviewer)
			if idx < 0 {
				continue
			}
			idx += len(reviewer)
		}
		if date != "" && !strings.Contains(rest[idx:], date) {
			continue
		}
		return true
	}
	return false
}

func cutDashPrefix(line string) (string, bool) {
	for _, dash := range dashVariants {
		if rest, ok := strings.CutPrefix(line, dash); ok {
			return rest, true
		}
	}
	return line, false
}

func lastN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lastTwoNonBlank returns the indexes of the last and second to last
// non-blank lines, or -1 when fewer than two exist.
func lastTwoNonBlank(lines []string) (last, prev int) {
	last, prev = -1, -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if last < 0 {
			last = i
			continue
		}
		prev = i
		break
	}
	return last, prev
}
