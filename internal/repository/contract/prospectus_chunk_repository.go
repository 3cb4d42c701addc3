package contract

import (
	"context"

	"prospectus-rag-be/internal/entity"
)

// ScoredProspectusChunk pairs a chunk with its cosine similarity to the query
type ScoredProspectusChunk struct {
	Chunk      *entity.ProspectusChunk
	Similarity float64
}

type ProspectusChunkRepository interface {
	// SearchSimilarWithScore returns the chunks nearest to the query vector,
	// ordered by descending cosine similarity. Returns fewer than limit rows
	// when the store is smaller; never an error for a small store.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredProspectusChunk, error)

	// Count reports the number of indexed chunks.
	Count(ctx context.Context) (int64, error)
}
