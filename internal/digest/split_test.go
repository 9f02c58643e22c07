package digest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMessagesWellFormedMarkers(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		var b strings.Builder
		for i := 1; i <= n; i++ {
			fmt.Fprintf(&b, "Message: %d\nSubject: Posting %d\n\nBody %d\n", i, i, i)
		}

		chunks := SplitMessages(b.String())
		require.Len(t, chunks, n, "markers=%d", n)
		for i, c := range chunks {
			require.Contains(t, c, fmt.Sprintf("Message: %d", i+1))
		}
	}
}

func TestSplitMessagesNoMarkersFallsBackToWholeText(t *testing.T) {
	raw := "Subject: something\r\n\r\njust a plain mail body\r\n"
	chunks := SplitMessages(raw)

	require.Len(t, chunks, 1)
	require.Equal(t, strings.ReplaceAll(raw, "\r", ""), chunks[0])
}

func TestSplitMessagesDropsPreamble(t *testing.T) {
	raw := "Digest of today\nSome preamble lines\nMessage: 1\nSubject: A\n\nbody\nMessage: 2\nSubject: B\n\nbody\n"
	chunks := SplitMessages(raw)

	require.Len(t, chunks, 2)
	require.True(t, strings.HasPrefix(chunks[0], "Message: 1"))
	require.True(t, strings.HasPrefix(chunks[1], "Message: 2"))
}

func TestSplitMessagesNeverEmpty(t *testing.T) {
	require.NotEmpty(t, SplitMessages(""))
}
