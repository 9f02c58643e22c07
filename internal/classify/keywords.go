package classify

// Fixed keyword tables. Loaded once at init, never mutated at runtime.
// Terms are stored lowercase; matching happens against lowercased text.

// jobKeywords marks a message as job-related when any of them occurs
// (plain substring, mixed English/German mailing-list vocabulary).
var jobKeywords = []string{
	"job",
	"vacancy",
	"assistant professor",
	"professor",
	"stelle",
	"stellenausschreibung",
	"hilfskraft",
	"praktikum",
	"internship",
	"bewerbung",
	"bewerbungsfrist",
	"apply",
	"position",
	"postdoc",
	"phd",
}

// domainKeywords covers data-science/analytics vocabulary.
var domainKeywords = []string{
	"data science",
	"data scientist",
	"data analysis",
	"data analytics",
	"machine learning",
	"ml",
	"ai",
	"ki",
	"nlp",
	"statistics",
	"statistical",
	"statistik",
	"econometrics",
	"quantitative",
	"python",
	"r",
	"stata",
	"causal inference",
	"text mining",
	"computational",
}

// policyKeywords covers public-policy/governance vocabulary.
var policyKeywords = []string{
	"policy",
	"politik",
	"public policy",
	"governance",
	"regulation",
	"regulierung",
	"public administration",
	"verwaltung",
	"public sector",
	"government",
	"evaluation",
	"evidence-based",
	"think tank",
	"social policy",
	"international relations",
}

// wholeWordTerms lists short ambiguous abbreviations that must match as
// whole words ("ai" must not hit inside "said", "ml" not inside "html").
// Deliberately kept to this hardcoded set; other short keywords in the
// tables above still match by plain substring.
var wholeWordTerms = map[string]bool{
	"ml":  true,
	"ai":  true,
	"ki":  true,
	"r":   true,
	"nlp": true,
}
