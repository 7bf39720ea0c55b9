package classifier

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/llm"
)

// fakeProvider returns a canned response or error and records the prompt.
type fakeProvider struct {
	response  string
	err       error
	gotPrompt string
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.gotPrompt = prompt
	return f.response, f.err
}

func newTestClassifier(provider llm.LLMProvider) *LLMClassifier {
	return NewLLMClassifier(provider, log.New(io.Discard, "", 0))
}

func TestClassifyQueryParsesVerdict(t *testing.T) {
	provider := &fakeProvider{
		response: `{"type": "coding", "confidence": 0.92, "difficulty": "hard"}`,
	}
	c := newTestClassifier(provider)

	verdict, err := c.ClassifyQuery(context.Background(),
		"Implement a lock-free queue in Go",
		router.RouteContext{SessionID: "s1", SubscriptionPlan: "pro"})

	require.NoError(t, err)
	assert.Equal(t, router.ContentTypeCoding, verdict.Type)
	assert.Equal(t, 0.92, verdict.Confidence)
	assert.Equal(t, router.DifficultyHard, verdict.Difficulty)

	// The prompt carries the raw query and the route context.
	assert.Contains(t, provider.gotPrompt, "Implement a lock-free queue in Go")
	assert.Contains(t, provider.gotPrompt, "SESSION: s1")
	assert.Contains(t, provider.gotPrompt, "PLAN: pro")
}

func TestClassifyQueryExtractsJSONFromChatter(t *testing.T) {
	c := newTestClassifier(&fakeProvider{
		response: "Sure! Here is the classification:\n{\"type\": \"image\", \"confidence\": 0.8, \"difficulty\": \"easy\"}\nHope that helps.",
	})

	verdict, err := c.ClassifyQuery(context.Background(), "Draw a cat", router.RouteContext{SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, router.ContentTypeImage, verdict.Type)
	assert.Equal(t, router.DifficultyEasy, verdict.Difficulty)
}

func TestClassifyQueryTransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	c := newTestClassifier(&fakeProvider{err: wantErr})

	verdict, err := c.ClassifyQuery(context.Background(), "anything", router.RouteContext{SessionID: "s1"})

	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, verdict)
}

func TestClassifyQueryUnparseableDegradesToHeuristics(t *testing.T) {
	c := newTestClassifier(&fakeProvider{response: "I cannot classify that, sorry."})

	verdict, err := c.ClassifyQuery(context.Background(),
		"Write a Python function to calculate fibonacci",
		router.RouteContext{SessionID: "s1"})

	require.NoError(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, router.ContentTypeCoding, verdict.Type)
	assert.LessOrEqual(t, verdict.Confidence, 0.6)
}

func TestClassifyQueryRejectsUnknownEnums(t *testing.T) {
	// An unknown type is a parse failure, so it degrades rather than leaking
	// a bogus category downstream.
	c := newTestClassifier(&fakeProvider{
		response: `{"type": "video", "confidence": 0.9, "difficulty": "hard"}`,
	})

	verdict, err := c.ClassifyQuery(context.Background(), "Tell me a story", router.RouteContext{SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, router.ContentTypeText, verdict.Type)
	assert.LessOrEqual(t, verdict.Confidence, 0.6)
}

func TestClassifyQueryClampsConfidence(t *testing.T) {
	c := newTestClassifier(&fakeProvider{
		response: `{"type": "text", "confidence": 3.5, "difficulty": "medium"}`,
	})

	verdict, err := c.ClassifyQuery(context.Background(), "hello", router.RouteContext{SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, 1.0, verdict.Confidence)
}

func TestClassifyQueryMissingDifficultyDefaultsToMedium(t *testing.T) {
	c := newTestClassifier(&fakeProvider{
		response: `{"type": "text", "confidence": 0.7}`,
	})

	verdict, err := c.ClassifyQuery(context.Background(), "hello", router.RouteContext{SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, router.DifficultyMedium, verdict.Difficulty)
}

func TestPerformanceStatsTracksParseRatio(t *testing.T) {
	provider := &fakeProvider{
		response: `{"type": "text", "confidence": 0.7, "difficulty": "easy"}`,
	}
	c := newTestClassifier(provider)

	assert.Equal(t, router.HybridStats{}, c.PerformanceStats())

	for i := 0; i < 3; i++ {
		_, err := c.ClassifyQuery(context.Background(), "hi there", router.RouteContext{SessionID: "s1"})
		require.NoError(t, err)
	}
	provider.response = "garbage"
	_, err := c.ClassifyQuery(context.Background(), "hi there", router.RouteContext{SessionID: "s1"})
	require.NoError(t, err)

	stats := c.PerformanceStats()
	assert.Equal(t, int64(4), stats.TotalClassifications)
	assert.InDelta(t, 0.75, stats.Accuracy, 1e-9)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"surrounded by prose", `before {"a": 1} after`, `{"a": 1}`},
		{"no braces", "nothing here", ""},
		{"reversed braces", "} {", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.response); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}
