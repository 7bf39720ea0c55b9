package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/ai/registry"
	"ai-chat-be/pkg/ai/router"
)

// noopLogger satisfies logger.ILogger without touching files or stdout.
type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestService(t *testing.T) (IRoutingService, IStatsConsumerService) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	queryRouter := router.NewRouter(
		memory.NewContextRepository(),
		registry.NewStaticRegistry(),
		nil,
		log.New(io.Discard, "", 0),
	)

	consumer := NewStatsConsumerService(pubSub, "QUERY_ROUTED")
	require.NoError(t, consumer.Consume(context.Background()))

	svc := NewRoutingService(queryRouter, pubSub, "QUERY_ROUTED", nil, consumer, noopLogger{})
	return svc, consumer
}

func TestRoutingServiceRoute(t *testing.T) {
	svc, _ := newTestService(t)

	decision, err := svc.Route(context.Background(), &dto.RouteQueryRequest{
		Query:            "Write a Python function to calculate fibonacci",
		SessionID:        "session-1",
		SubscriptionPlan: "pro",
	})

	require.NoError(t, err)
	assert.Equal(t, router.ContentTypeCoding, decision.Type)
	assert.NotEmpty(t, decision.PrimaryModel)
}

func TestRoutingServiceCountersAccumulate(t *testing.T) {
	svc, consumer := newTestService(t)

	queries := []string{
		"Write a Python function to calculate fibonacci",
		"Create an image of a beautiful landscape",
		"What is the capital of France?",
	}
	for i, q := range queries {
		_, err := svc.Route(context.Background(), &dto.RouteQueryRequest{
			Query:     dto.FlexString(q),
			SessionID: "session-counters",
		})
		require.NoError(t, err, "query %d", i)
	}

	// Delivery through the in-process bus is asynchronous.
	require.Eventually(t, func() bool {
		return consumer.Snapshot().TotalRouted == int64(len(queries))
	}, 2*time.Second, 10*time.Millisecond)

	counters := consumer.Snapshot()
	assert.Equal(t, int64(1), counters.ByType["coding"])
	assert.Equal(t, int64(1), counters.ByType["image"])
	assert.Equal(t, int64(1), counters.ByType["text"])
}

func TestRoutingServiceStats(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Route(context.Background(), &dto.RouteQueryRequest{
		Query:     "Explain how channels work",
		SessionID: "session-stats",
	})
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 1, stats.CacheSize)
	assert.Equal(t, router.RuleCount(), stats.RoutingRules)
	assert.Greater(t, stats.AvailableModels, 0)
}

func TestRoutingServiceResetContextCache(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Route(context.Background(), &dto.RouteQueryRequest{
		Query:     "Explain how channels work",
		SessionID: "session-reset",
	})
	require.NoError(t, err)
	require.Equal(t, 1, svc.Stats().CacheSize)

	svc.ResetContextCache(context.Background())
	assert.Equal(t, 0, svc.Stats().CacheSize)
}

func TestRoutingServiceHealth(t *testing.T) {
	svc, _ := newTestService(t)

	health := svc.Health()
	assert.Equal(t, "healthy", health.Status)
}

func TestRoutingServiceHybridStatsWithoutClassifier(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, router.HybridStats{}, svc.HybridStats())
}
