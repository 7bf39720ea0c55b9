package router

import "time"

// RoutingStats is a read-only snapshot for introspection endpoints.
type RoutingStats struct {
	CacheSize       int `json:"cache_size"`
	AvailableModels int `json:"available_models"`
	RoutingRules    int `json:"routing_rules"`
}

// HealthStatus is a liveness report. It never probes the hybrid classifier
// or the model registry.
type HealthStatus struct {
	Status           string    `json:"status"`
	ContextCacheSize int       `json:"context_cache_size"`
	RoutingRules     int       `json:"routing_rules"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
	Timestamp        time.Time `json:"timestamp"`
}

// Stats reports the current cache, catalog and rule-table sizes.
func (r *Router) Stats() RoutingStats {
	return RoutingStats{
		CacheSize:       r.store.Size(),
		AvailableModels: len(r.registry.GetAvailableModels()),
		RoutingRules:    RuleCount(),
	}
}

// HybridPerformanceStats proxies the hybrid classifier's own stats accessor.
// Without a classifier it reports zeroes.
func (r *Router) HybridPerformanceStats() HybridStats {
	if r.hybrid == nil {
		return HybridStats{}
	}
	return r.hybrid.PerformanceStats()
}

// HealthCheck always reports healthy: it is a liveness probe, not a
// dependency check.
func (r *Router) HealthCheck() HealthStatus {
	return HealthStatus{
		Status:           "healthy",
		ContextCacheSize: r.store.Size(),
		RoutingRules:     RuleCount(),
		UptimeSeconds:    time.Since(r.startedAt).Seconds(),
		Timestamp:        time.Now(),
	}
}

// ClearContextCache wipes every session entry. Used for operator resets and
// test isolation, not per-session expiry.
func (r *Router) ClearContextCache() {
	r.store.Clear()
}
