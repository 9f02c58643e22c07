// Package classify scores digest message text against fixed keyword
// taxonomies: a job-indicator list and a dual domain/policy profile.
package classify

import (
	"regexp"
	"strings"
)

// Profile is the dual-taxonomy scoring result for one message.
type Profile struct {
	DomainHits []string
	PolicyHits []string
	Score      int
	IsMatch    bool

	// MatchedKeywords is DomainHits followed by PolicyHits, capped at
	// maxMatchedKeywords; domain terms take priority in the truncation.
	MatchedKeywords []string
}

const maxMatchedKeywords = 10

var wholeWordRe = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(wholeWordTerms))
	for term := range wholeWordTerms {
		m[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return m
}()

// IsJobText reports whether text contains any job-indicator keyword.
func IsJobText(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range jobKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ScoreProfile evaluates both taxonomies against text. A profile matches
// only when each taxonomy contributed at least one hit and the combined
// score is >= 2, so a single ambiguous term never flips the flag.
func ScoreProfile(text string) Profile {
	lower := strings.ToLower(text)

	var p Profile
	p.DomainHits = hits(lower, domainKeywords)
	p.PolicyHits = hits(lower, policyKeywords)
	p.Score = len(p.DomainHits) + len(p.PolicyHits)
	p.IsMatch = len(p.DomainHits) >= 1 && len(p.PolicyHits) >= 1 && p.Score >= 2

	matched := make([]string, 0, p.Score)
	matched = append(matched, p.DomainHits...)
	matched = append(matched, p.PolicyHits...)
	if len(matched) > maxMatchedKeywords {
		matched = matched[:maxMatchedKeywords]
	}
	p.MatchedKeywords = matched
	return p
}

func hits(lower string, keywords []string) []string {
	var out []string
	for _, k := range keywords {
		if matchKeyword(lower, k) {
			out = append(out, k)
		}
	}
	return out
}

func matchKeyword(lower, keyword string) bool {
	if re, ok := wholeWordRe[keyword]; ok {
		return re.MatchString(lower)
	}
	return strings.Contains(lower, keyword)
}
