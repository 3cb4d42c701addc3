package pipeline

import (
	"context"
	"log"

	"prospectus-rag-be/pkg/llm"
	"prospectus-rag-be/pkg/rag/prompt"
	"prospectus-rag-be/pkg/store"
)

// ChunkRetriever abstracts the similarity search step
type ChunkRetriever interface {
	Retrieve(ctx context.Context, question string) ([]store.RetrievedChunk, error)
}

// ConversationalPipeline answers a question against the prospectus store:
// retrieve top-k chunks, render the fixed two-slot prompt, call the LLM with
// the session's prior turns as chat history, record the new turn.
//
// History feeds the LLM as chat messages only; the retrieval query is always
// the raw question. The rendered template itself has no history slot.
type ConversationalPipeline struct {
	retriever   ChunkRetriever
	llmProvider llm.LLMProvider
	temperature float64
	maxTokens   int
	logger      *log.Logger
}

func NewConversationalPipeline(
	retriever ChunkRetriever,
	llmProvider llm.LLMProvider,
	temperature float64,
	maxTokens int,
	logger *log.Logger,
) *ConversationalPipeline {
	return &ConversationalPipeline{
		retriever:   retriever,
		llmProvider: llmProvider,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Result contains the generated answer and the raw retrieved chunks so the
// caller can derive any metadata it needs (page numbers, scores).
type Result struct {
	Answer  string
	Sources []store.RetrievedChunk
}

// Answer runs one turn. The caller must hold the conversation's lock.
func (p *ConversationalPipeline) Answer(ctx context.Context, conv *store.Conversation, question string) (*Result, error) {
	p.logger.Printf("[PIPELINE] Session %s: answering %q", conv.ID, truncate(question, 50))

	chunks, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	promptText := prompt.NewBuilder(chunks, question).Build()

	// Prior turns precede the rendered prompt as alternating chat messages
	history := make([]llm.Message, 0, len(conv.History())*2+1)
	for _, turn := range conv.History() {
		history = append(history,
			llm.Message{Role: "user", Content: turn.Question},
			llm.Message{Role: "assistant", Content: turn.Answer},
		)
	}
	history = append(history, llm.Message{Role: "user", Content: promptText})

	answer, err := p.llmProvider.Chat(ctx, history,
		llm.WithTemperature(p.temperature),
		llm.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return nil, err
	}

	conv.Append(question, answer)

	p.logger.Printf("[PIPELINE] Session %s: answered with %d source chunks, %d turns in memory",
		conv.ID, len(chunks), len(conv.History()))

	return &Result{
		Answer:  answer,
		Sources: chunks,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
