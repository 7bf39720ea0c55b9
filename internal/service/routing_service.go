package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IRoutingService is the application-level facade over the query router.
type IRoutingService interface {
	Route(ctx context.Context, request *dto.RouteQueryRequest) (*router.RoutingDecision, error)
	Stats() *dto.RoutingStatsResponse
	HybridStats() router.HybridStats
	Health() router.HealthStatus
	ResetContextCache(ctx context.Context)
}

type routingService struct {
	queryRouter    *router.Router
	pubSub         *gochannel.GoChannel
	topicName      string
	auditPublisher *pktNats.Publisher // nil when NATS is not configured
	statsConsumer  IStatsConsumerService
	logger         logger.ILogger
}

func NewRoutingService(
	queryRouter *router.Router,
	pubSub *gochannel.GoChannel,
	topicName string,
	auditPublisher *pktNats.Publisher,
	statsConsumer IStatsConsumerService,
	sysLogger logger.ILogger,
) IRoutingService {
	return &routingService{
		queryRouter:    queryRouter,
		pubSub:         pubSub,
		topicName:      topicName,
		auditPublisher: auditPublisher,
		statsConsumer:  statsConsumer,
		logger:         sysLogger,
	}
}

// Route delegates to the router and emits a QUERY_ROUTED event on success.
// Router errors (hybrid classifier failures) propagate to the caller
// unmodified; event publishing failures are logged and swallowed because
// the decision itself already succeeded.
func (s *routingService) Route(ctx context.Context, request *dto.RouteQueryRequest) (*router.RoutingDecision, error) {
	decision, err := s.queryRouter.RouteQuery(ctx, string(request.Query), router.RouteContext{
		SessionID:        request.SessionID,
		SubscriptionPlan: request.SubscriptionPlan,
	})
	if err != nil {
		s.logger.Error("ROUTING", "Routing failed", map[string]interface{}{
			"session_id": request.SessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.publishRouted(ctx, request, decision)
	return decision, nil
}

func (s *routingService) publishRouted(ctx context.Context, request *dto.RouteQueryRequest, decision *router.RoutingDecision) {
	now := time.Now()
	payload := dto.QueryRoutedMessage{
		SessionID:    request.SessionID,
		Plan:         request.SubscriptionPlan,
		Type:         string(decision.Type),
		Difficulty:   string(decision.Difficulty),
		PrimaryModel: decision.PrimaryModel,
		Confidence:   decision.Confidence,
		IsFollowUp:   decision.ContextSignals.IsFollowUp,
		IsCorrection: decision.ContextSignals.IsCorrection,
		RoutedAt:     now,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("ROUTING", "Failed to marshal QUERY_ROUTED payload", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		s.logger.Error("ROUTING", "Failed to publish QUERY_ROUTED event", map[string]interface{}{"error": err.Error()})
	}

	if s.auditPublisher != nil {
		evt := events.NewBaseEvent(events.TypeQueryRouted, map[string]interface{}{
			"session_id":    payload.SessionID,
			"plan":          payload.Plan,
			"type":          payload.Type,
			"difficulty":    payload.Difficulty,
			"primary_model": payload.PrimaryModel,
			"confidence":    payload.Confidence,
			"routed_at":     now,
		})
		if err := s.auditPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ROUTING", "Failed to publish audit event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *routingService) Stats() *dto.RoutingStatsResponse {
	snapshot := s.queryRouter.Stats()
	return &dto.RoutingStatsResponse{
		CacheSize:       snapshot.CacheSize,
		AvailableModels: snapshot.AvailableModels,
		RoutingRules:    snapshot.RoutingRules,
		Counters:        s.statsConsumer.Snapshot(),
	}
}

func (s *routingService) HybridStats() router.HybridStats {
	return s.queryRouter.HybridPerformanceStats()
}

func (s *routingService) Health() router.HealthStatus {
	return s.queryRouter.HealthCheck()
}

// ResetContextCache wipes all session context. Operator-triggered only.
func (s *routingService) ResetContextCache(ctx context.Context) {
	s.queryRouter.ClearContextCache()
	s.logger.Info("ROUTING", "Context cache cleared", nil)

	if s.auditPublisher != nil {
		evt := events.NewBaseEvent(events.TypeContextCacheReset, map[string]interface{}{
			"cleared_at": time.Now(),
		})
		if err := s.auditPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ROUTING", "Failed to publish audit event", map[string]interface{}{"error": err.Error()})
		}
	}
}
