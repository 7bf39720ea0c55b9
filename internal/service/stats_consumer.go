package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-chat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IStatsConsumerService aggregates QUERY_ROUTED events into in-memory
// counters for the stats endpoint.
type IStatsConsumerService interface {
	Consume(ctx context.Context) error
	Snapshot() dto.RoutingCounters
}

type statsConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string

	mu           sync.RWMutex
	total        int64
	byType       map[string]int64
	byDifficulty map[string]int64
}

func NewStatsConsumerService(pubSub *gochannel.GoChannel, topicName string) IStatsConsumerService {
	return &statsConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		byType:       make(map[string]int64),
		byDifficulty: make(map[string]int64),
	}
}

func (cs *statsConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *statsConsumerService) processMessage(msg *message.Message) {
	var payload dto.QueryRoutedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal QUERY_ROUTED message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.mu.Lock()
	cs.total++
	cs.byType[payload.Type]++
	cs.byDifficulty[payload.Difficulty]++
	cs.mu.Unlock()

	msg.Ack()
}

func (cs *statsConsumerService) Snapshot() dto.RoutingCounters {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	counters := dto.RoutingCounters{
		TotalRouted:  cs.total,
		ByType:       make(map[string]int64, len(cs.byType)),
		ByDifficulty: make(map[string]int64, len(cs.byDifficulty)),
	}
	for k, v := range cs.byType {
		counters.ByType[k] = v
	}
	for k, v := range cs.byDifficulty {
		counters.ByDifficulty[k] = v
	}
	return counters
}
