// Package digest turns raw mailing-list digest text into structured
// job-posting records: splitting, header extraction, field inference and
// taxonomy classification. Everything in this package is a pure function
// of its input plus the fixed keyword tables.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Placeholder values for fields that could not be extracted or inferred.
const (
	UnknownValue       = "Unknown"
	DeadlineNotFound   = "Not found"
	PositionTypeNA     = "N/A"
	maxSnippetLen      = 900
	fingerprintHexLen  = 16
)

// Record is one parsed digest message.
type Record struct {
	ID           string `json:"id"`
	Index        int    `json:"index"`
	Subject      string `json:"subject"`
	From         string `json:"from"`
	Date         string `json:"date"`
	Organization string `json:"organization"`
	Deadline     string `json:"deadline"`
	PositionType string `json:"positionType"`

	Links   []string `json:"links"`
	Snippet string   `json:"snippet"`

	IsJob                   bool     `json:"isJob"`
	IsDsPolicyFit           bool     `json:"isDsPolicyFit"`
	DsPolicyScore           int      `json:"dsPolicyScore"`
	DsPolicyMatchedKeywords []string `json:"dsPolicyMatchedKeywords"`
}

// Fingerprint derives the stable dedup id for a record from its identity
// fields and first link. Same inputs always give the same 16-hex-char id.
func Fingerprint(subject, from, date, firstLink string) string {
	src := strings.Join([]string{subject, from, date, firstLink}, "|")
	sum := sha1.Sum([]byte(src))
	return hex.EncodeToString(sum[:])[:fingerprintHexLen]
}

// IsJobRecord is the job-only filter predicate for consumers.
func IsJobRecord(r Record) bool { return r.IsJob }

// IsProfileFitRecord is the profile-fit filter predicate for consumers.
func IsProfileFitRecord(r Record) bool { return r.IsDsPolicyFit }

// Filter re-derives a visible subset over the full record set. The input
// slice is never modified; callers may change predicates at any time and
// filter again over the same records.
func Filter(records []Record, pred func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func clipRunes(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
