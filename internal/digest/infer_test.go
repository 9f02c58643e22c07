package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanSubjectStripsListTag(t *testing.T) {
	require.Equal(t, "PhD Position", CleanSubject("[ib-liste] PhD Position"))
	require.Equal(t, "PhD Position", CleanSubject("[IB-Liste]  PhD Position"))
	require.Equal(t, "PhD Position", CleanSubject("PhD Position"))
}

func TestExtractLinksDedupPreservesOrder(t *testing.T) {
	body := "See https://a.org/x and (https://b.org/y) then https://a.org/x again"

	require.Equal(t, []string{"https://a.org/x", "https://b.org/y"}, ExtractLinks(body))
}

func TestExtractLinksStopsAtDelimiters(t *testing.T) {
	links := ExtractLinks("info <https://a.org/x> end")
	require.Equal(t, []string{"https://a.org/x"}, links)
}

func TestExtractBody(t *testing.T) {
	require.Equal(t, "the body", ExtractBody("Subject: x\n\nthe body"))
	require.Equal(t, "no blank line here", ExtractBody("no blank line here"))
}

func TestInferOrganizationPriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    string
	}{
		{"institution pattern wins", "PhD Position, Somewhere", "at Universität Konstanz we study", "Universität Konstanz we study"},
		{"institute variant", "Job, X", "the Institut für Politikwissenschaft invites", "Institut für Politikwissenschaft invites"},
		{"trailing comma segment", "Research Fellow, Example Org", "no relevant words", "Example Org"},
		{"unknown", "Research Fellow", "nothing to find", UnknownValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InferOrganization(tt.subject, tt.body))
		})
	}
}

func TestInferDeadlineFirstRuleWins(t *testing.T) {
	require.Equal(t, "March 1", InferDeadline("Apply by March 1. Bewerbungsfrist: 2024-02-15."))
	require.Equal(t, "2024-02-15", InferDeadline("Bewerbungsfrist: 2024-02-15."))
	require.Equal(t, "15.03.2024", InferDeadline("Bewerbung bis zum 15.03.2024 möglich"))
	require.Equal(t, DeadlineNotFound, InferDeadline("no deadline mentioned"))
}

func TestInferPositionTypeOrderedChain(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Assistant Professor position in policy", "Assistant Professor"},
		{"Postdoc or PhD welcome", "Postdoc"},
		{"PhD position available", "PhD"},
		{"Praktikum im Bereich Datenanalyse", "Internship"},
		{"summer internship", "Internship"},
		{"Studentische Hilfskraft gesucht", "Student Assistant"},
		{"offene Stelle im Institut", "Position"},
		{"nothing relevant", PositionTypeNA},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, InferPositionType(tt.text), "text=%q", tt.text)
	}
}
