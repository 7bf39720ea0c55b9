package router

import "regexp"

// ContentType is the coarse category the router believes best matches a
// query's intent.
type ContentType string

const (
	ContentTypeCoding ContentType = "coding"
	ContentTypeImage  ContentType = "image"
	ContentTypeText   ContentType = "text"
)

// Difficulty is the coarse complexity tier used to bias model selection.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rule is one weighted signal in a content-type rule set. The tables below
// are data, not code: the classifier applies the same scoring function to
// each set, so tuning the heuristic means editing a table.
type Rule struct {
	Pattern *regexp.Regexp
	Weight  float64
}

func rule(pattern string, weight float64) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Weight: weight}
}

var codingRules = []Rule{
	rule(`\bfunction\b`, 2.5),
	rule(`\b(code|coding|script)\b`, 2.0),
	rule(`\b(debug|debugging|stack ?trace|exception)\b`, 2.0),
	rule(`\balgorithm\b`, 2.0),
	rule(`\b(compile|compiler|syntax)\b`, 2.0),
	rule(`\b(implement|refactor)\b`, 1.5),
	rule(`\b(class|method|variable|struct|interface)\b`, 1.5),
	rule(`\b(program|library|package|module)\b`, 1.0),
	rule(`\bunit test\b|\btest case\b`, 1.5),
	rule(`\b(python|javascript|typescript|golang|java|rust|ruby|php|swift|kotlin|scala|sql)\b`, 3.0),
	rule("```|~~~", 3.0),
	rule(`\bregex\b|\bapi\b|\bjson\b`, 1.0),
}

var imageRules = []Rule{
	rule(`\b(create|generate|make) (an? )?(image|picture|photo)\b`, 3.0),
	rule(`\bimage of\b|\bpicture of\b|\bphoto of\b`, 2.5),
	rule(`\bdraw\b|\bdrawing\b`, 2.5),
	rule(`\blogo\b`, 2.5),
	rule(`\b(illustration|illustrate)\b`, 2.0),
	rule(`\b(painting|sketch|portrait)\b`, 2.0),
	rule(`\bwallpaper\b|\bposter\b`, 2.0),
	rule(`\brender\b|\bart style\b|\bdigital art\b`, 1.5),
	rule(`\bvisuali[sz]e\b`, 1.5),
}

var textRules = []Rule{
	rule(`\bsummari[sz]e\b`, 1.5),
	rule(`\btranslate\b`, 1.5),
	rule(`\bwrite (an? )?(essay|article|blog|letter|email|story|poem)\b`, 2.0),
	rule(`\bexplain\b`, 1.0),
	rule(`\bwhat is\b|\bwhat are\b`, 1.0),
	rule(`\b(story|poem|letter|email|essay)\b`, 1.5),
	rule(`\b(advice|recommend|suggest)\b`, 1.0),
	rule(`\b(meaning|definition|describe)\b`, 1.0),
}

// ruleSets maps each content type to its rule table. Iteration order for
// arg-max is fixed elsewhere so classification stays deterministic.
var ruleSets = map[ContentType][]Rule{
	ContentTypeCoding: codingRules,
	ContentTypeImage:  imageRules,
	ContentTypeText:   textRules,
}

// RuleCount reports the total number of routing rules across all rule sets.
func RuleCount() int {
	n := 0
	for _, rules := range ruleSets {
		n += len(rules)
	}
	return n
}
