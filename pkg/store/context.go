package store

import "time"

// ContextEntry is the per-session routing memory kept between queries.
// It is overwritten on every routed query for a session and never expires
// on its own; a manual cache clear is the only eviction path.
type ContextEntry struct {
	LastQuery string                 `json:"last_query"`
	LastType  string                 `json:"last_type"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Subscription plans recognized by the tier filter.
const (
	PlanFree = "free"
	PlanPlus = "plus"
	PlanPro  = "pro"
)
