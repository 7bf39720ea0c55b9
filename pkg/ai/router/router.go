package router

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-chat-be/pkg/store"
)

// RouteContext is the caller-supplied per-request context.
type RouteContext struct {
	SessionID        string `json:"session_id"`
	SubscriptionPlan string `json:"subscription_plan,omitempty"`
}

// ModelInfo describes one entry in the model catalog.
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// ModelRegistry is the external catalog of available models. Catalog order
// within a specialty runs from most to least capable; the tier policy is
// registry configuration, not router logic.
type ModelRegistry interface {
	GetAvailableModels() []ModelInfo
	AllowedForPlan(plan string) []string
}

// HybridVerdict is the external classifier's view of a query.
type HybridVerdict struct {
	Type       ContentType `json:"type"`
	Confidence float64     `json:"confidence"`
	Difficulty Difficulty  `json:"difficulty"`
}

// HybridStats is the external classifier's self-reported performance.
type HybridStats struct {
	Accuracy             float64 `json:"accuracy"`
	TotalClassifications int64   `json:"total_classifications"`
}

// HybridClassifier is the independent, possibly ML-backed classifier the
// router consults. It receives the raw query and the full route context,
// never the preprocessed form.
type HybridClassifier interface {
	ClassifyQuery(ctx context.Context, query string, rc RouteContext) (*HybridVerdict, error)
	PerformanceStats() HybridStats
}

// RoutingDecision is the router's output. It is returned to the caller and
// never persisted.
type RoutingDecision struct {
	Type           ContentType     `json:"type"`
	Confidence     float64         `json:"confidence"`
	Difficulty     Difficulty      `json:"difficulty"`
	PrimaryModel   string          `json:"primary_model"`
	FallbackModel  string          `json:"fallback_model,omitempty"`
	Reasoning      string          `json:"reasoning"`
	ContextSignals ContextAnalysis `json:"context_signals"`
}

// Router combines content-type, difficulty and context signals with the
// model catalog to produce a routing decision per query.
type Router struct {
	store     ContextStore
	analyzer  *ContextAnalyzer
	registry  ModelRegistry
	hybrid    HybridClassifier
	logger    *log.Logger
	startedAt time.Time
}

// NewRouter creates a router around an injected context store. The hybrid
// classifier may be nil, in which case the local heuristics stand alone.
func NewRouter(
	contextStore ContextStore,
	registry ModelRegistry,
	hybrid HybridClassifier,
	logger *log.Logger,
) *Router {
	return &Router{
		store:     contextStore,
		analyzer:  NewContextAnalyzer(contextStore),
		registry:  registry,
		hybrid:    hybrid,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// RouteQuery decides which model should answer the query. It always resolves
// to a decision for empty or adversarial input; the only errors that surface
// are failures of the hybrid classifier collaborator, which propagate
// unmodified.
func (r *Router) RouteQuery(ctx context.Context, query string, rc RouteContext) (*RoutingDecision, error) {
	p := Preprocess(query)

	local := AnalyzeContentType(p)
	contentType := local.Type
	confidence := local.Confidence

	if r.hybrid != nil {
		// The hybrid verdict is authoritative for type and confidence.
		// Its failure is the caller's problem: no retry, no heuristic
		// fallback at this layer.
		verdict, err := r.hybrid.ClassifyQuery(ctx, query, rc)
		if err != nil {
			return nil, err
		}
		if verdict != nil {
			contentType = verdict.Type
			confidence = verdict.Confidence
		}
	}

	difficulty := AssessDifficulty(p).Level
	signals := r.analyzer.Analyze(p, rc.SessionID)

	primary, fallback := r.selectModels(contentType, difficulty, rc.SubscriptionPlan)

	decision := &RoutingDecision{
		Type:           contentType,
		Confidence:     confidence,
		Difficulty:     difficulty,
		PrimaryModel:   primary,
		FallbackModel:  fallback,
		Reasoning:      buildReasoning(contentType, confidence, difficulty, primary, signals),
		ContextSignals: signals,
	}

	r.logger.Printf("[ROUTER] Session %s: %s/%s -> %s (confidence %.2f)",
		rc.SessionID, contentType, difficulty, primary, confidence)

	// Sole mutation point: write-after-decide. Concurrent routes for the
	// same session race here with last-write-wins semantics.
	r.UpdateContextCache(rc.SessionID, &store.ContextEntry{
		LastQuery: p.Cleaned,
		LastType:  string(contentType),
		Timestamp: time.Now(),
	})

	return decision, nil
}

// selectModels filters the catalog by specialty and subscription plan. The
// filter narrows the candidate set but never empties it: when a cut would
// leave nothing, it is progressively relaxed until a model remains.
func (r *Router) selectModels(ct ContentType, d Difficulty, plan string) (primary, fallback string) {
	models := r.registry.GetAvailableModels()
	if len(models) == 0 {
		return "", ""
	}

	allowed := make(map[string]bool)
	for _, id := range r.registry.AllowedForPlan(plan) {
		allowed[id] = true
	}

	var bySpecialtyAndPlan, bySpecialty, byPlan []ModelInfo
	for _, m := range models {
		specialtyMatch := m.Specialty == string(ct)
		if specialtyMatch {
			bySpecialty = append(bySpecialty, m)
		}
		if allowed[m.ID] {
			byPlan = append(byPlan, m)
			if specialtyMatch {
				bySpecialtyAndPlan = append(bySpecialtyAndPlan, m)
			}
		}
	}

	candidates := bySpecialtyAndPlan
	if len(candidates) == 0 {
		candidates = byPlan
	}
	if len(candidates) == 0 {
		candidates = bySpecialty
	}
	if len(candidates) == 0 {
		candidates = models
	}

	// Catalog order runs most to least capable, so difficulty maps onto an
	// index: hard takes the strongest candidate, easy the cheapest.
	idx := 0
	switch d {
	case DifficultyEasy:
		idx = len(candidates) - 1
	case DifficultyMedium:
		idx = len(candidates) / 2
	}

	primary = candidates[idx].ID
	for _, c := range candidates {
		if c.ID != primary {
			fallback = c.ID
			break
		}
	}
	return primary, fallback
}

func buildReasoning(ct ContentType, confidence float64, d Difficulty, model string, signals ContextAnalysis) string {
	reason := fmt.Sprintf("Classified as %s content (confidence %.2f) at %s difficulty; selected %s",
		ct, confidence, d, model)
	switch {
	case signals.IsCorrection:
		reason += "; query corrects the previous response"
	case signals.IsFollowUp:
		reason += fmt.Sprintf("; follow-up to a previous %s query", signals.LastType)
	}
	return reason
}

// UpdateContextCache writes the session's context entry. An empty session id
// is a no-op, never an error.
func (r *Router) UpdateContextCache(sessionID string, entry *store.ContextEntry) {
	if sessionID == "" || entry == nil {
		return
	}
	r.store.Set(sessionID, entry)
}
