package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/store"
)

// StaticRegistry is a configuration-backed model catalog. The catalog is
// ordered most to least capable within each specialty; the tier policy maps
// subscription plans onto allowed model ids. Both are data, so the router
// never hard-codes a plan-to-model mapping.
type StaticRegistry struct {
	models []router.ModelInfo
	tiers  map[string][]string
}

// Catalog is the serialized form of a registry, loadable from JSON.
type Catalog struct {
	Models []router.ModelInfo  `json:"models"`
	Tiers  map[string][]string `json:"tiers"`
}

var _ router.ModelRegistry = &StaticRegistry{}

// NewStaticRegistry builds the default catalog. Every specialty keeps at
// least one model in every plan so the tier filter can narrow but never
// empty the candidate set.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		models: []router.ModelInfo{
			{ID: "code-master", Name: "Code Master", Specialty: "coding"},
			{ID: "code-standard", Name: "Code Standard", Specialty: "coding"},
			{ID: "code-lite", Name: "Code Lite", Specialty: "coding"},
			{ID: "image-ultra", Name: "Image Ultra", Specialty: "image"},
			{ID: "image-standard", Name: "Image Standard", Specialty: "image"},
			{ID: "chat-advanced", Name: "Chat Advanced", Specialty: "text"},
			{ID: "chat-standard", Name: "Chat Standard", Specialty: "text"},
			{ID: "chat-lite", Name: "Chat Lite", Specialty: "text"},
		},
		tiers: map[string][]string{
			store.PlanFree: {"code-lite", "image-standard", "chat-standard", "chat-lite"},
			store.PlanPlus: {"code-standard", "code-lite", "image-standard", "chat-advanced", "chat-standard", "chat-lite"},
			store.PlanPro: {"code-master", "code-standard", "code-lite", "image-ultra", "image-standard",
				"chat-advanced", "chat-standard", "chat-lite"},
		},
	}
}

// NewFromFile loads a catalog override from a JSON file.
func NewFromFile(path string) (*StaticRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model catalog: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse model catalog: %w", err)
	}
	if len(catalog.Models) == 0 {
		return nil, fmt.Errorf("model catalog %s contains no models", path)
	}

	return &StaticRegistry{
		models: catalog.Models,
		tiers:  catalog.Tiers,
	}, nil
}

// GetAvailableModels returns a copy of the catalog.
func (r *StaticRegistry) GetAvailableModels() []router.ModelInfo {
	out := make([]router.ModelInfo, len(r.models))
	copy(out, r.models)
	return out
}

// AllowedForPlan returns the model ids the plan may use. Unknown or empty
// plans are treated as free tier.
func (r *StaticRegistry) AllowedForPlan(plan string) []string {
	if ids, ok := r.tiers[plan]; ok {
		return ids
	}
	return r.tiers[store.PlanFree]
}
