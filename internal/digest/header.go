package digest

import (
	"regexp"
	"strings"
)

var (
	// A line that itself looks like a header: capitalized word plus colon.
	headerLineRe = regexp.MustCompile(`^[A-Z][A-Za-z-]+:`)
	foldedWSRe   = regexp.MustCompile(`\n\s+`)
)

// ExtractHeader returns the value of the named header inside a chunk as a
// single-line, whitespace-collapsed string, or "" when absent. The value
// runs from the "Name:" line up to the next header-looking line, a blank
// line, or the end of the chunk, whichever comes first.
func ExtractHeader(chunk, name string) string {
	prefix := name + ":"
	lines := strings.Split(chunk, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	captured := []string{strings.TrimPrefix(lines[start], prefix)}
	for _, line := range lines[start+1:] {
		if line == "" || headerLineRe.MatchString(line) {
			break
		}
		captured = append(captured, line)
	}

	value := strings.Join(captured, "\n")
	value = foldedWSRe.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
