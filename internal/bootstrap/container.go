package bootstrap

import (
	"context"
	"log"

	"prospectus-rag-be/internal/config"
	"prospectus-rag-be/internal/controller"
	"prospectus-rag-be/internal/pkg/logger"
	"prospectus-rag-be/internal/repository/implementation"
	"prospectus-rag-be/internal/repository/memory"
	"prospectus-rag-be/internal/service"
	"prospectus-rag-be/pkg/embedding"
	"prospectus-rag-be/pkg/llm/factory"
	"prospectus-rag-be/pkg/rag/pipeline"
	"prospectus-rag-be/pkg/rag/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

// NewContainer constructs every long-lived dependency exactly once, in
// startup order: LLM client first, then the vector store. Both are read-only
// after this returns. Any unmet precondition aborts startup.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	log.Println("initializing LLM...")
	baseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, cfg.Keys.OpenRouter)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewHuggingFaceProvider(cfg.Keys.HuggingFace, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE (%s)", cfg.Ai.EmbeddingModel)
	}

	// 4. Vector Store
	// The chunk table must exist and be populated before startup; serving
	// with an empty store would answer every question from nothing.
	log.Println("initializing vector store...")
	chunkRepo := implementation.NewProspectusChunkRepository(db)
	docCount, err := chunkRepo.Count(context.Background())
	if err != nil {
		log.Fatalf("[FATAL] Failed to inspect prospectus chunk store: %v", err)
	}
	if docCount == 0 {
		log.Fatalf("[FATAL] Prospectus chunk store is empty; ingest the prospectus before starting")
	}
	log.Printf("vector store initialized with %d documents.", docCount)

	// 5. Session Registry + RAG Pipeline
	registry := memory.NewSessionRegistry()
	llmLogger := service.InitLLMLogger()

	retriever := retrieval.NewRetriever(embeddingProvider, chunkRepo, cfg.Retrieval.TopK, llmLogger)
	ragPipeline := pipeline.NewConversationalPipeline(
		retriever,
		llmProvider,
		cfg.Ai.Temperature,
		cfg.Ai.MaxTokens,
		llmLogger,
	)

	// 6. Services
	chatLogRepo := implementation.NewChatLogRepository(db)
	publisherService := service.NewPublisherService(cfg.App.TranscriptTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.TranscriptTopic, chatLogRepo)

	chatService := service.NewChatService(
		ragPipeline,
		registry,
		chatLogRepo,
		publisherService,
		sysLogger,
		docCount,
	)

	// 7. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService, sysLogger),
		ConsumerService: consumerService,
	}
}
