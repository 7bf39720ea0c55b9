package router

import "math"

// ContentTypeAnalysis is the local heuristic classification of a query.
type ContentTypeAnalysis struct {
	Type       ContentType `json:"type"`
	Confidence float64     `json:"confidence"`
}

// defaultConfidence is reported when no rule fires. It stays below 0.8 so
// callers can tell an explicit match from the text fallback.
const defaultConfidence = 0.5

// AnalyzeContentType scores the query against each rule set and returns the
// winning type. Pure function: same descriptor in, same analysis out.
// Ties and non-matches resolve to text.
func AnalyzeContentType(p PreprocessedQuery) ContentTypeAnalysis {
	bestType := ContentTypeText
	bestScore := scoreRuleSet(textRules, p)

	// Fixed evaluation order keeps arg-max deterministic. A challenger must
	// strictly beat the incumbent, so a tie leaves text in place.
	for _, ct := range []ContentType{ContentTypeCoding, ContentTypeImage} {
		if s := scoreRuleSet(ruleSets[ct], p); s > bestScore {
			bestType = ct
			bestScore = s
		}
	}

	if bestScore == 0 {
		return ContentTypeAnalysis{Type: ContentTypeText, Confidence: defaultConfidence}
	}

	confidence := 0.55 + bestScore*0.12
	confidence = math.Min(confidence, 0.95)

	return ContentTypeAnalysis{
		Type:       bestType,
		Confidence: math.Round(confidence*100) / 100,
	}
}

// scoreRuleSet sums the weights of matched rules and normalizes by a
// query-length factor, so a long rambling query does not accumulate an
// unbounded score from incidental keyword hits.
func scoreRuleSet(rules []Rule, p PreprocessedQuery) float64 {
	var score float64
	for _, r := range rules {
		if r.Pattern.MatchString(p.Cleaned) {
			score += r.Weight
		}
	}
	if score == 0 {
		return 0
	}
	lengthFactor := 1.0 + float64(p.WordCount)/25.0
	return score / lengthFactor
}
