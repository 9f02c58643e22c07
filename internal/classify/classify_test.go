package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsJobText(t *testing.T) {
	require.True(t, IsJobText("Open Position at the institute"))
	require.True(t, IsJobText("Stellenausschreibung: wissenschaftliche Hilfskraft"))
	require.True(t, IsJobText("please APPLY soon"))
	require.False(t, IsJobText("newsletter about the weather"))
}

func TestScoreProfileRequiresBothTaxonomies(t *testing.T) {
	// two domain hits, zero policy hits: score passes the threshold but
	// the dual-taxonomy requirement fails
	p := ScoreProfile("We use Python and statistics every day")
	require.GreaterOrEqual(t, p.Score, 2)
	require.Empty(t, p.PolicyHits)
	require.False(t, p.IsMatch)

	// zero domain hits, two policy hits
	p = ScoreProfile("governance and regulation in Europe")
	require.GreaterOrEqual(t, p.Score, 2)
	require.Empty(t, p.DomainHits)
	require.False(t, p.IsMatch)

	// one of each
	p = ScoreProfile("Python for public policy")
	require.True(t, p.IsMatch)
	require.Equal(t, 3, p.Score) // python + policy + public policy
}

func TestScoreProfileWholeWordAbbreviations(t *testing.T) {
	// "HTML" must not satisfy "ml"
	p := ScoreProfile("we write HTML pages about governance")
	require.NotContains(t, p.DomainHits, "ml")

	// "the ML team" must
	p = ScoreProfile("the ML team works on governance")
	require.Contains(t, p.DomainHits, "ml")

	// "said" must not satisfy "ai"
	p = ScoreProfile("she said something about governance")
	require.NotContains(t, p.DomainHits, "ai")

	// bare "R" only as a whole word
	p = ScoreProfile("experience with R required, policy focus")
	require.Contains(t, p.DomainHits, "r")
	p = ScoreProfile("regular reporting on policy")
	require.NotContains(t, p.DomainHits, "r")
}

func TestScoreProfileMatchedKeywordOrderAndCap(t *testing.T) {
	text := "data science data analysis machine learning statistics python stata " +
		"econometrics quantitative computational text mining " +
		"policy governance regulation evaluation government"
	p := ScoreProfile(text)

	require.True(t, p.IsMatch)
	require.Len(t, p.MatchedKeywords, 10)
	// domain keywords take priority in the truncation
	for _, k := range p.MatchedKeywords {
		require.Contains(t, p.DomainHits, k)
	}
}

func TestScoreProfileEmptyText(t *testing.T) {
	p := ScoreProfile("")
	require.False(t, p.IsMatch)
	require.Zero(t, p.Score)
	require.Empty(t, p.MatchedKeywords)
}
