package router

import (
	"regexp"
	"strings"
)

// PreprocessedQuery is the structured descriptor derived from raw query text.
// Everything downstream (content-type scoring, difficulty assessment, context
// analysis) works off this descriptor, never the raw string.
type PreprocessedQuery struct {
	Original             string   `json:"original"`
	Cleaned              string   `json:"cleaned"`
	Tokens               []string `json:"tokens"`
	WordCount            int      `json:"word_count"`
	Length               int      `json:"length"`
	HasCodeBlocks        bool     `json:"has_code_blocks"`
	HasURLs              bool     `json:"has_urls"`
	TechnicalTerms       []string `json:"technical_terms,omitempty"`
	ProgrammingLanguages []string `json:"programming_languages,omitempty"`
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	tokenSplitPattern = regexp.MustCompile(`\W+`)
	codeBlockPattern  = regexp.MustCompile("```|~~~")
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)

	technicalTermPattern = regexp.MustCompile(`\b(api|json|xml|http|https|rest|graphql|sql|database|server|cache|queue|docker|kubernetes|git|regex|algorithm|async|thread|compiler|runtime|framework|backend|frontend|endpoint|schema|token|webhook|deployment)\b`)
	languageNamePattern  = regexp.MustCompile(`\b(python|javascript|typescript|golang|java|rust|ruby|php|swift|kotlin|scala|perl|haskell|elixir|bash|html|css)\b`)
)

// Preprocess normalizes a raw query into a PreprocessedQuery. It is a total
// function: empty or garbage input yields an empty-shaped descriptor, never
// an error. Identical input always produces an identical descriptor.
func Preprocess(query string) PreprocessedQuery {
	cleaned := strings.ToLower(strings.TrimSpace(query))
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")

	var tokens []string
	for _, tok := range tokenSplitPattern.Split(cleaned, -1) {
		// Drop short tokens ("is", "a") and anything punctuation-only.
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}

	return PreprocessedQuery{
		Original:             query,
		Cleaned:              cleaned,
		Tokens:               tokens,
		WordCount:            len(strings.Fields(cleaned)),
		Length:               len(query),
		HasCodeBlocks:        codeBlockPattern.MatchString(query),
		HasURLs:              urlPattern.MatchString(strings.ToLower(query)),
		TechnicalTerms:       uniqueMatches(technicalTermPattern, cleaned),
		ProgrammingLanguages: uniqueMatches(languageNamePattern, cleaned),
	}
}

// uniqueMatches returns deduplicated matches in first-seen order.
func uniqueMatches(pattern *regexp.Regexp, s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range pattern.FindAllString(s, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
