package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/ai/classifier"
	"ai-chat-be/pkg/ai/registry"
	"ai-chat-be/pkg/ai/router"
	"ai-chat-be/pkg/llm/factory"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	RoutingController controller.IRoutingController

	// Background services (exposed for main.go to run)
	StatsConsumer service.IStatsConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus for routing stats aggregation.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Model registry: static catalog unless a JSON override is configured.
	modelRegistry := registry.NewStaticRegistry()
	if cfg.Registry.CatalogPath != "" {
		loaded, err := registry.NewFromFile(cfg.Registry.CatalogPath)
		if err != nil {
			log.Printf("[WARN] Failed to load model catalog %s: %v. Using default catalog", cfg.Registry.CatalogPath, err)
		} else {
			modelRegistry = loaded
		}
	}

	routingLogger := initRoutingLogger()

	// Hybrid classifier is optional: without it the router's local
	// heuristics stand alone.
	var hybrid router.HybridClassifier
	if cfg.Ai.HybridEnabled {
		baseURL := cfg.Ai.OllamaBaseURL
		if cfg.Ai.LLMProvider == "huggingface" {
			baseURL = cfg.Ai.HuggingFaceBaseURL
		}
		provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, cfg.Ai.HuggingFaceAPIKey)
		if err != nil {
			log.Printf("[WARN] Hybrid classifier disabled: %v", err)
		} else {
			hybrid = classifier.NewLLMClassifier(provider, routingLogger)
		}
	}

	contextRepo := memory.NewContextRepository()
	queryRouter := router.NewRouter(contextRepo, modelRegistry, hybrid, routingLogger)

	// NATS audit stream is optional.
	var auditPublisher *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS: %v. Audit stream disabled", err)
		} else {
			auditPublisher = pub
		}
	}

	statsConsumer := service.NewStatsConsumerService(pubSub, cfg.App.RoutedTopic)
	routingService := service.NewRoutingService(
		queryRouter,
		pubSub,
		cfg.App.RoutedTopic,
		auditPublisher,
		statsConsumer,
		sysLogger,
	)

	return &Container{
		RoutingController: controller.NewRoutingController(routingService),
		StatsConsumer:     statsConsumer,
		Logger:            sysLogger,
	}
}

func initRoutingLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "routing.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ROUTING] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
