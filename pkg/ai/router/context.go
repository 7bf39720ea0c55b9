package router

import (
	"regexp"
	"time"

	"ai-chat-be/pkg/store"
)

// ContextStore is the injected per-session memory the router reads before a
// decision and writes after one. Implementations are expected to be
// last-write-wins under concurrent routes for the same session; the router
// does not serialize sessions.
type ContextStore interface {
	Get(sessionID string) (*store.ContextEntry, bool)
	Set(sessionID string, entry *store.ContextEntry)
	Clear()
	Size() int
}

// ContextAnalysis describes how the current query relates to the session's
// previous one.
type ContextAnalysis struct {
	IsFollowUp         bool          `json:"is_follow_up"`
	IsCorrection       bool          `json:"is_correction"`
	HasHistory         bool          `json:"has_history"`
	LastType           ContentType   `json:"last_type,omitempty"`
	TimeSinceLastQuery time.Duration `json:"time_since_last_query,omitempty"`
}

var (
	correctionPattern = regexp.MustCompile(`^no[,. ]|\bthat'?s (wrong|incorrect|not right)\b|\bfix the\b|\bnot what i (asked|meant|wanted)\b|\btry again\b`)
	followUpPattern   = regexp.MustCompile(`\balso\b|\bmore about\b|\bcan you\b|\bwhat about\b|\band (what|how|why)\b|\bexpand on\b|\bgo deeper\b|\btell me more\b`)
)

// ContextAnalyzer classifies queries as fresh, follow-up or correction
// against the session's cached history.
type ContextAnalyzer struct {
	store ContextStore
}

func NewContextAnalyzer(store ContextStore) *ContextAnalyzer {
	return &ContextAnalyzer{store: store}
}

// Analyze is a pure read: the store is only written by the router once a
// full decision has been made.
func (a *ContextAnalyzer) Analyze(p PreprocessedQuery, sessionID string) ContextAnalysis {
	analysis := ContextAnalysis{}

	entry, found := a.store.Get(sessionID)
	if found {
		analysis.HasHistory = true
		analysis.LastType = ContentType(entry.LastType)
		analysis.TimeSinceLastQuery = time.Since(entry.Timestamp)
	}

	// Correction markers take precedence: "no, that's wrong, can you fix it"
	// is a correction even though it contains a follow-up marker.
	switch {
	case correctionPattern.MatchString(p.Cleaned):
		analysis.IsCorrection = true
	case found && followUpPattern.MatchString(p.Cleaned):
		analysis.IsFollowUp = true
	}

	return analysis
}
