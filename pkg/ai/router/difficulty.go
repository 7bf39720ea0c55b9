package router

import "regexp"

// DifficultyAssessment is the heuristic complexity verdict for a query.
type DifficultyAssessment struct {
	Level Difficulty `json:"level"`
}

// Thresholds are deliberately crude pattern-matching, not a model. Word
// count is a hard floor: a single-word query is easy no matter how heavy
// its vocabulary is.
const (
	easyWordFloor     = 2
	hardWordThreshold = 40
	hardCharThreshold = 280
	hardIndicatorMin  = 2
)

var (
	hardIndicatorPattern = regexp.MustCompile(`\b(architecture|architectural|distributed|scalab\w*|optimi[sz]\w*|concurren\w*|microservice\w*|performance|asynchronous|fault[ -]?toleran\w*|consensus|replication|sharding|throughput|latency|tradeoff\w*)\b`)
	easyIndicatorPattern = regexp.MustCompile(`\bwhat is\b|\bwhat are\b|\bsimple\b|\bbasic\b|\bbeginner\b|\bmeaning of\b|\bdefine\b`)
)

// AssessDifficulty resolves a query to easy, medium or hard.
func AssessDifficulty(p PreprocessedQuery) DifficultyAssessment {
	if p.WordCount <= easyWordFloor {
		return DifficultyAssessment{Level: DifficultyEasy}
	}

	hardHits := len(uniqueMatches(hardIndicatorPattern, p.Cleaned))
	if p.WordCount >= hardWordThreshold || p.Length >= hardCharThreshold || hardHits >= hardIndicatorMin {
		return DifficultyAssessment{Level: DifficultyHard}
	}

	// Simple phrasing with little jargon reads as easy, but only when no
	// hard indicator is present at all.
	if hardHits == 0 && easyIndicatorPattern.MatchString(p.Cleaned) && len(p.TechnicalTerms) <= 1 {
		return DifficultyAssessment{Level: DifficultyEasy}
	}

	return DifficultyAssessment{Level: DifficultyMedium}
}
