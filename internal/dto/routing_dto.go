package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"ai-chat-be/pkg/ai/router"
)

// FlexString tolerates non-string JSON values for the query field: numbers
// and booleans are stringified, null and composite values degrade to empty.
// Malformed queries never fail at this boundary; the router degrades their
// classification instead.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}

	*f = ""
	return nil
}

// RouteQueryRequest is the routing endpoint's payload.
type RouteQueryRequest struct {
	Query            FlexString `json:"query"`
	SessionID        string     `json:"session_id" validate:"required"`
	SubscriptionPlan string     `json:"subscription_plan" validate:"omitempty,oneof=free plus pro"`
}

// QueryRoutedMessage is the event payload published after every decision.
type QueryRoutedMessage struct {
	SessionID    string    `json:"session_id"`
	Plan         string    `json:"plan,omitempty"`
	Type         string    `json:"type"`
	Difficulty   string    `json:"difficulty"`
	PrimaryModel string    `json:"primary_model"`
	Confidence   float64   `json:"confidence"`
	IsFollowUp   bool      `json:"is_follow_up"`
	IsCorrection bool      `json:"is_correction"`
	RoutedAt     time.Time `json:"routed_at"`
}

// RoutingCounters is the aggregated view maintained by the stats consumer.
type RoutingCounters struct {
	TotalRouted  int64            `json:"total_routed"`
	ByType       map[string]int64 `json:"by_type"`
	ByDifficulty map[string]int64 `json:"by_difficulty"`
}

// RoutingStatsResponse combines the router's snapshot with the aggregated
// counters.
type RoutingStatsResponse struct {
	CacheSize       int             `json:"cache_size"`
	AvailableModels int             `json:"available_models"`
	RoutingRules    int             `json:"routing_rules"`
	Counters        RoutingCounters `json:"counters"`
}

// RouteQueryResponse mirrors the router's decision for the HTTP caller.
type RouteQueryResponse = router.RoutingDecision
