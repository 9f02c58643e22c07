package digest

import (
	"regexp"
	"strings"
)

// A message boundary is a line of the form "Message: <number>".
var markerRe = regexp.MustCompile(`(?m)^Message:\s+\d+`)

// SplitMessages divides a raw digest blob into per-message chunks.
// Line endings are normalized first. The text is cut immediately before
// every marker line; segments without their own marker are dropped. When
// no marker exists anywhere the whole normalized text is the one chunk,
// so the result is never empty.
func SplitMessages(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r", "")

	locs := markerRe.FindAllStringIndex(normalized, -1)
	if len(locs) == 0 {
		return []string{normalized}
	}

	cuts := make([]int, 0, len(locs)+1)
	if locs[0][0] != 0 {
		cuts = append(cuts, 0)
	}
	for _, loc := range locs {
		cuts = append(cuts, loc[0])
	}

	chunks := make([]string, 0, len(cuts))
	for i, start := range cuts {
		end := len(normalized)
		if i+1 < len(cuts) {
			end = cuts[i+1]
		}
		seg := normalized[start:end]
		if markerRe.MatchString(seg) {
			chunks = append(chunks, seg)
		}
	}

	if len(chunks) == 0 {
		return []string{normalized}
	}
	return chunks
}
