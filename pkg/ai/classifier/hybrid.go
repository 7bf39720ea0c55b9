package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/llm"
)

// LLMClassifier is an LLM-backed implementation of the router's
// HybridClassifier contract. It asks the model for a structured verdict at
// temperature 0 so repeated calls stay deterministic.
//
// Transport failures are returned to the caller and propagate through the
// router. An unparseable model response degrades to a low-confidence local
// verdict instead; that distinction keeps flaky model output from taking
// the whole routing path down while real outages still surface.
type LLMClassifier struct {
	provider llm.LLMProvider
	logger   *log.Logger

	mu     sync.Mutex
	total  int64
	parsed int64
}

func NewLLMClassifier(provider llm.LLMProvider, logger *log.Logger) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		logger:   logger,
	}
}

var _ router.HybridClassifier = &LLMClassifier{}

// ClassifyQuery sends the raw query and route context to the LLM and parses
// the structured verdict out of its response.
func (c *LLMClassifier) ClassifyQuery(ctx context.Context, query string, rc router.RouteContext) (*router.HybridVerdict, error) {
	prompt := buildPrompt(query, rc)

	response, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("hybrid classification failed: %w", err)
	}

	verdict, err := parseVerdict(response)

	c.mu.Lock()
	c.total++
	if err == nil {
		c.parsed++
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Printf("[CLASSIFIER] Verdict parsing failed, degrading to heuristics: %v", err)
		return degradedVerdict(query), nil
	}

	c.logger.Printf("[CLASSIFIER] %s (confidence %.2f, difficulty %s)",
		verdict.Type, verdict.Confidence, verdict.Difficulty)
	return verdict, nil
}

// PerformanceStats reports the parse success ratio as accuracy.
func (c *LLMClassifier) PerformanceStats() router.HybridStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	accuracy := 0.0
	if c.total > 0 {
		accuracy = float64(c.parsed) / float64(c.total)
	}
	return router.HybridStats{
		Accuracy:             accuracy,
		TotalClassifications: c.total,
	}
}

func buildPrompt(query string, rc router.RouteContext) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are a query classifier. Your ONLY job is to categorize the query.\n")
	prompt.WriteString("You do NOT answer the query. You only classify it.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<request_context>\n")
	prompt.WriteString(fmt.Sprintf("SESSION: %s\n", rc.SessionID))
	if rc.SubscriptionPlan != "" {
		prompt.WriteString(fmt.Sprintf("PLAN: %s\n", rc.SubscriptionPlan))
	}
	prompt.WriteString("</request_context>\n\n")

	prompt.WriteString("<user_query>\n")
	prompt.WriteString(query)
	prompt.WriteString("\n</user_query>\n\n")

	prompt.WriteString("<categories>\n")
	prompt.WriteString("coding: programming, debugging, code review, algorithms, technical implementation\n")
	prompt.WriteString("image: generating, drawing or editing pictures, logos, illustrations\n")
	prompt.WriteString("text: everything else - explanations, writing, translation, general chat\n")
	prompt.WriteString("</categories>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"type\": \"coding|image|text\",\n")
	prompt.WriteString("  \"confidence\": 0.95,\n")
	prompt.WriteString("  \"difficulty\": \"easy|medium|hard\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func parseVerdict(response string) (*router.HybridVerdict, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var raw struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
		Difficulty string  `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	verdict := &router.HybridVerdict{
		Type:       router.ContentType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Confidence: raw.Confidence,
		Difficulty: router.Difficulty(strings.ToLower(strings.TrimSpace(raw.Difficulty))),
	}

	switch verdict.Type {
	case router.ContentTypeCoding, router.ContentTypeImage, router.ContentTypeText:
	default:
		return nil, fmt.Errorf("unknown content type %q", raw.Type)
	}

	switch verdict.Difficulty {
	case router.DifficultyEasy, router.DifficultyMedium, router.DifficultyHard:
	case "":
		verdict.Difficulty = router.DifficultyMedium
	default:
		return nil, fmt.Errorf("unknown difficulty %q", raw.Difficulty)
	}

	if verdict.Confidence < 0 {
		verdict.Confidence = 0
	}
	if verdict.Confidence > 1 {
		verdict.Confidence = 1
	}

	return verdict, nil
}

// degradedVerdict falls back to the local heuristics with capped confidence.
func degradedVerdict(query string) *router.HybridVerdict {
	p := router.Preprocess(query)
	local := router.AnalyzeContentType(p)

	confidence := local.Confidence
	if confidence > 0.6 {
		confidence = 0.6
	}

	return &router.HybridVerdict{
		Type:       local.Type,
		Confidence: confidence,
		Difficulty: router.AssessDifficulty(p).Level,
	}
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
