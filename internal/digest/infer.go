package digest

import (
	"regexp"
	"strings"
)

var (
	listTagRe = regexp.MustCompile(`(?i)^\[ib-liste\]\s*`)
	linkRe    = regexp.MustCompile(`https?://[^\s)>]+`)

	orgNameRe    = regexp.MustCompile(`(?i)(?:University|Universit[aä]t|Institut|Institute)\s+[^,\n.]*`)
	trailingSegRe = regexp.MustCompile(`,\s*([^,]+)$`)
)

// deadlineRules are tried in order; the first capture wins.
var deadlineRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)apply by\s+([^\n\r.!?]+)`),
	regexp.MustCompile(`(?i)bewerbungsfrist\s*[:\-]?\s*([^\n\r.!?]+)`),
	regexp.MustCompile(`(?i)bis zum\s+([0-9]{1,2}\.[0-9]{1,2}\.[0-9]{2,4})`),
}

// positionRules form an ordered if/else chain over the lowercased text.
// More specific categories come before generic ones: "assistant professor"
// must win before "professor"-adjacent terms like "position" get a chance.
var positionRules = []struct {
	terms  []string
	result string
}{
	{[]string{"assistant professor"}, "Assistant Professor"},
	{[]string{"postdoc"}, "Postdoc"},
	{[]string{"phd"}, "PhD"},
	{[]string{"praktikum", "internship"}, "Internship"},
	{[]string{"hilfskraft"}, "Student Assistant"},
	{[]string{"stelle", "position", "job"}, "Position"},
}

// ExtractBody returns everything after the first blank-line-delimited
// block (the header block). Without a blank-line split the whole chunk is
// the body.
func ExtractBody(chunk string) string {
	if i := strings.Index(chunk, "\n\n"); i >= 0 {
		return chunk[i+2:]
	}
	return chunk
}

// ExtractLinks collects HTTP(S) URL tokens from body text, deduplicated
// in first-seen order. URL tokens stop at whitespace, ")" or ">".
func ExtractLinks(body string) []string {
	raw := linkRe.FindAllString(body, -1)
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, u := range raw {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// CleanSubject strips the mailing-list tag prefix from a subject.
func CleanSubject(subject string) string {
	return strings.TrimSpace(listTagRe.ReplaceAllString(subject, ""))
}

// InferOrganization tries, in priority order: an institution-name pattern
// over subject+body, then the trailing comma-separated segment of the
// subject. Rules are never combined; first match wins.
func InferOrganization(subject, body string) string {
	combined := subject + "\n" + body
	if m := orgNameRe.FindString(combined); m != "" {
		return strings.TrimSpace(m)
	}
	if m := trailingSegRe.FindStringSubmatch(subject); m != nil {
		return strings.TrimSpace(m[1])
	}
	return UnknownValue
}

// InferDeadline applies the ordered deadline phrase rules to text.
func InferDeadline(text string) string {
	for _, re := range deadlineRules {
		if m := re.FindStringSubmatch(text); m != nil && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return DeadlineNotFound
}

// InferPositionType walks the ordered position rule chain against the
// lowercased text and returns the first category whose terms occur.
func InferPositionType(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range positionRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.result
			}
		}
	}
	return PositionTypeNA
}
