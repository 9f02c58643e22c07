package feed

import (
	"jobdigest-engine/internal/classify"
	"jobdigest-engine/internal/digest"
)

// Normalize guarantees record shape for externally supplied items. Any
// classification field whose key was absent on the wire is recomputed
// from subject+snippet+organization+positionType; present fields pass
// through unchanged, including falsy ones. Records out of ParseDigest
// round-trip through here without modification.
func Normalize(items []Item) []digest.Record {
	records := make([]digest.Record, 0, len(items))
	for i, it := range items {
		records = append(records, normalizeItem(it, i+1))
	}
	return records
}

func normalizeItem(it Item, fallbackIndex int) digest.Record {
	r := digest.Record{
		ID:           it.ID,
		Index:        it.Index,
		Subject:      it.Subject,
		From:         it.From,
		Date:         it.Date,
		Organization: it.Organization,
		Deadline:     it.Deadline,
		PositionType: it.PositionType,
		Links:        it.Links,
		Snippet:      it.Snippet,
	}

	if r.Index == 0 {
		r.Index = fallbackIndex
	}
	if r.Organization == "" {
		r.Organization = digest.UnknownValue
	}
	if r.Deadline == "" {
		r.Deadline = digest.DeadlineNotFound
	}
	if r.PositionType == "" {
		r.PositionType = digest.PositionTypeNA
	}
	if r.ID == "" {
		firstLink := ""
		if len(r.Links) > 0 {
			firstLink = r.Links[0]
		}
		r.ID = digest.Fingerprint(r.Subject, r.From, r.Date, firstLink)
	}

	text := r.Subject + "\n" + r.Snippet + "\n" + r.Organization + "\n" + r.PositionType

	if it.IsJob != nil {
		r.IsJob = *it.IsJob
	} else {
		r.IsJob = classify.IsJobText(text)
	}

	needFit := it.IsDsPolicyFit == nil
	needScore := it.DsPolicyScore == nil
	needMatched := it.DsPolicyMatchedKeywords == nil

	if needFit || needScore || needMatched {
		p := classify.ScoreProfile(text)
		if needFit {
			r.IsDsPolicyFit = p.IsMatch
		}
		if needScore {
			r.DsPolicyScore = p.Score
		}
		if needMatched {
			r.DsPolicyMatchedKeywords = p.MatchedKeywords
		}
	}
	if !needFit {
		r.IsDsPolicyFit = *it.IsDsPolicyFit
	}
	if !needScore {
		r.DsPolicyScore = *it.DsPolicyScore
	}
	if !needMatched {
		r.DsPolicyMatchedKeywords = it.DsPolicyMatchedKeywords
	}

	return r
}
