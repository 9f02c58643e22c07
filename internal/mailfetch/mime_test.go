package mailfetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRFC822Plain(t *testing.T) {
	raw := []byte("Subject: =?utf-8?q?ib-liste_Digest?=\r\n" +
		"From: list@example.org\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Message: 1\r\nSubject: PhD Position\r\n\r\nApply by March 1. https://example.org/job\r\n")

	body, htmlBody, subject := ParseRFC822(raw, "fallback")
	require.Equal(t, "ib-liste Digest", subject)
	require.Empty(t, htmlBody)
	require.Contains(t, body, "Message: 1")
	require.Contains(t, body, "https://example.org/job")
}

func TestParseRFC822Multipart(t *testing.T) {
	raw := []byte("Subject: digest\r\n" +
		"Content-Type: multipart/alternative; boundary=BOUND\r\n" +
		"\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain part here\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html part here</p>\r\n" +
		"--BOUND--\r\n")

	body, htmlBody, subject := ParseRFC822(raw, "")
	require.Equal(t, "digest", subject)
	require.Contains(t, body, "plain part here")
	require.Contains(t, htmlBody, "html part here")
}

func TestBodyTextPrefersPlain(t *testing.T) {
	raw := []byte("Subject: x\r\nContent-Type: text/plain\r\n\r\nthe plain body\r\n")
	require.Contains(t, BodyText(raw), "the plain body")
}

func TestHTMLToText(t *testing.T) {
	got := HTMLToText("<html><head><style>p{color:red}</style></head>" +
		"<body><p>Hello <b>World</b></p><script>var x=1;</script></body></html>")
	require.Equal(t, "Hello World", got)
}

func TestHTMLToTextPlainInput(t *testing.T) {
	got := HTMLToText("just   some\n text")
	require.Equal(t, "just some text", got)
}

func TestContainsAnyCI(t *testing.T) {
	require.True(t, ContainsAnyCI("[ib-liste] Digest Vol 42", []string{"ib-liste"}))
	require.True(t, ContainsAnyCI("IB-LISTE digest", []string{"ib-liste"}))
	require.False(t, ContainsAnyCI("unrelated mail", []string{"ib-liste"}))
	require.False(t, ContainsAnyCI("anything", nil))
	require.False(t, ContainsAnyCI("anything", []string{" ", ""}))
}

func TestDecodeRFC2047PassesThroughPlain(t *testing.T) {
	require.Equal(t, "plain subject", DecodeRFC2047("plain subject"))
	require.Equal(t, "Grüße", DecodeRFC2047("=?utf-8?q?Gr=C3=BC=C3=9Fe?="))
}

func TestBodyTextFallsBackToHTML(t *testing.T) {
	raw := []byte("Subject: x\r\nContent-Type: text/html\r\n\r\n<p>only html</p>\r\n")
	body := BodyText(raw)
	require.Equal(t, "only html", strings.TrimSpace(body))
}
