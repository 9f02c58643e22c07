package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractHeaderSingleLine(t *testing.T) {
	chunk := "Message: 1\nSubject: PhD Position\nFrom: a@b.org\nDate: 2024-01-01\n\nbody"

	require.Equal(t, "PhD Position", ExtractHeader(chunk, "Subject"))
	require.Equal(t, "a@b.org", ExtractHeader(chunk, "From"))
	require.Equal(t, "2024-01-01", ExtractHeader(chunk, "Date"))
}

func TestExtractHeaderFoldedValue(t *testing.T) {
	chunk := "Subject: PhD Position in\n   Computational Social Science\nFrom: a@b.org\n\nbody"

	require.Equal(t, "PhD Position in Computational Social Science", ExtractHeader(chunk, "Subject"))
}

func TestExtractHeaderStopsAtBlankLine(t *testing.T) {
	chunk := "Subject: Short one\n\nApply by March 1"

	require.Equal(t, "Short one", ExtractHeader(chunk, "Subject"))
}

func TestExtractHeaderAbsent(t *testing.T) {
	require.Equal(t, "", ExtractHeader("no headers here\n\nbody", "Subject"))
}

func TestExtractHeaderIdempotent(t *testing.T) {
	chunk := "Subject: PhD Position in\n   Computational Social Science\nFrom: a@b.org\n\nbody"
	first := ExtractHeader(chunk, "Subject")
	second := ExtractHeader("Subject: "+first, "Subject")

	require.Equal(t, first, second)
}
