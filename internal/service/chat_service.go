package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"

	"prospectus-rag-be/internal/dto"
	"prospectus-rag-be/internal/pkg/logger"
	"prospectus-rag-be/internal/repository/contract"
	"prospectus-rag-be/internal/repository/memory"
	"prospectus-rag-be/pkg/rag/pipeline"
	"prospectus-rag-be/pkg/store"
)

// IChatService defines the chat service interface
type IChatService interface {
	Ask(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
	Ready() bool
	DocumentCount() int64
}

type chatService struct {
	pipeline    *pipeline.ConversationalPipeline
	registry    *memory.SessionRegistry
	chatLogRepo contract.ChatLogRepository
	publisher   IPublisherService
	sysLogger   logger.ILogger
	docCount    int64
}

func NewChatService(
	ragPipeline *pipeline.ConversationalPipeline,
	registry *memory.SessionRegistry,
	chatLogRepo contract.ChatLogRepository,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	docCount int64,
) IChatService {
	return &chatService{
		pipeline:    ragPipeline,
		registry:    registry,
		chatLogRepo: chatLogRepo,
		publisher:   publisher,
		sysLogger:   sysLogger,
		docCount:    docCount,
	}
}

// InitLLMLogger returns the dedicated logger for pipeline internals.
// Falls back to stdout when the log directory cannot be created.
func InitLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) Ready() bool {
	return cs.pipeline != nil && cs.registry != nil
}

func (cs *chatService) DocumentCount() int64 {
	return cs.docCount
}

// Ask answers one question within the request's session. The conversation
// lock serializes overlapping requests that carry the same session id; the
// pipeline mutates only that session's memory, never the shared clients.
func (cs *chatService) Ask(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = dto.DefaultSessionId
	}

	conv, created := cs.registry.ResolveOrCreate(sessionId)
	if created {
		cs.sysLogger.Info("chat", "creating new session", map[string]interface{}{
			"session_id": sessionId,
		})
	}

	conv.Lock()
	defer conv.Unlock()

	result, err := cs.pipeline.Answer(ctx, conv, request.Question)
	if err != nil {
		return nil, err
	}

	sourcePages := SourcePagesFrom(result.Sources)

	// Transcript trail is best-effort and must never fail the request
	if err := cs.publisher.PublishTranscript(&dto.ChatTranscriptMessage{
		SessionId:   sessionId,
		Question:    request.Question,
		Answer:      result.Answer,
		SourcePages: sourcePages,
	}); err != nil {
		cs.sysLogger.Warn("chat", "failed to publish transcript", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	return &dto.ChatResponse{
		Question:    request.Question,
		Answer:      result.Answer,
		SourcePages: sourcePages,
		SessionId:   sessionId,
	}, nil
}

// GetHistory returns the persisted transcript for a session, oldest first.
func (cs *chatService) GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	if sessionId == "" {
		sessionId = dto.DefaultSessionId
	}

	logs, err := cs.chatLogRepo.FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	turns := make([]dto.ChatHistoryEntry, 0, len(logs))
	for _, l := range logs {
		turns = append(turns, dto.ChatHistoryEntry{
			Question:    l.Question,
			Answer:      l.Answer,
			SourcePages: l.SourcePages,
			CreatedAt:   l.CreatedAt,
		})
	}

	return &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Turns:     turns,
	}, nil
}

// SourcePagesFrom derives the display page list from retrieved chunks:
// stored pages are 0-based, the response is 1-based, sorted and unique.
// Chunks without page metadata are skipped.
func SourcePagesFrom(chunks []store.RetrievedChunk) []int {
	seen := make(map[int]bool)
	pages := make([]int, 0, len(chunks))

	for _, chunk := range chunks {
		if chunk.Page == nil {
			continue
		}
		pageNum := *chunk.Page + 1
		if seen[pageNum] {
			continue
		}
		seen[pageNum] = true
		pages = append(pages, pageNum)
	}

	sort.Ints(pages)
	return pages
}
