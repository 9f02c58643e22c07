package digest

import (
	"fmt"

	"jobdigest-engine/internal/classify"
)

// ParseDigest runs the full pipeline over a raw digest blob and returns
// one Record per message chunk, indexed from 1. Malformed input never
// fails: absent fields fall back to their documented placeholders.
func ParseDigest(raw string) []Record {
	chunks := SplitMessages(raw)
	records := make([]Record, 0, len(chunks))

	for i, chunk := range chunks {
		idx := i + 1

		subject := ExtractHeader(chunk, "Subject")
		if subject == "" {
			subject = fmt.Sprintf("Message %d", idx)
		}
		sender := ExtractHeader(chunk, "From")
		if sender == "" {
			sender = UnknownValue
		}
		date := ExtractHeader(chunk, "Date")
		if date == "" {
			date = UnknownValue
		}

		body := ExtractBody(chunk)
		text := subject + "\n" + body
		links := ExtractLinks(body)
		cleaned := CleanSubject(subject)

		profile := classify.ScoreProfile(text)

		firstLink := ""
		if len(links) > 0 {
			firstLink = links[0]
		}

		records = append(records, Record{
			ID:           Fingerprint(cleaned, sender, date, firstLink),
			Index:        idx,
			Subject:      cleaned,
			From:         sender,
			Date:         date,
			Organization: InferOrganization(subject, body),
			Deadline:     InferDeadline(text),
			PositionType: InferPositionType(text),
			Links:        links,
			Snippet:      clipRunes(body, maxSnippetLen),

			IsJob:                   classify.IsJobText(text),
			IsDsPolicyFit:           profile.IsMatch,
			DsPolicyScore:           profile.Score,
			DsPolicyMatchedKeywords: profile.MatchedKeywords,
		})
	}

	return records
}
