package retrieval

import (
	"context"
	"fmt"
	"log"

	"prospectus-rag-be/internal/repository/contract"
	"prospectus-rag-be/pkg/embedding"
	"prospectus-rag-be/pkg/store"
)

// Retriever embeds the question and runs a top-k similarity search against
// the prospectus chunk store
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	chunkRepo         contract.ProspectusChunkRepository
	topK              int
	logger            *log.Logger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	chunkRepo contract.ProspectusChunkRepository,
	topK int,
	logger *log.Logger,
) *Retriever {
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{
		embeddingProvider: embeddingProvider,
		chunkRepo:         chunkRepo,
		topK:              topK,
		logger:            logger,
	}
}

// Retrieve returns the topK chunks most similar to the question. No score
// threshold is applied; a store smaller than topK yields fewer chunks.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]store.RetrievedChunk, error) {
	embeddingRes, err := r.embeddingProvider.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scoredResults, err := r.chunkRepo.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, r.topK)
	if err != nil {
		r.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	r.logger.Printf("[DEBUG] Raw search results: %d chunks", len(scoredResults))

	chunks := make([]store.RetrievedChunk, 0, len(scoredResults))
	for i, res := range scoredResults {
		chunks = append(chunks, store.RetrievedChunk{
			ID:      res.Chunk.Id.String(),
			Content: res.Chunk.Content,
			Page:    res.Chunk.Page,
			Score:   float32(res.Similarity),
		})
		r.logger.Printf("[DEBUG] Chunk %d: Score=%.4f", i+1, res.Similarity)
	}

	return chunks, nil
}
