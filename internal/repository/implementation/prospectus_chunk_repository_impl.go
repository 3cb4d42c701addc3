package implementation

import (
	"context"

	"prospectus-rag-be/internal/mapper"
	"prospectus-rag-be/internal/model"
	"prospectus-rag-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ProspectusChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProspectusChunkMapper
}

func NewProspectusChunkRepository(db *gorm.DB) contract.ProspectusChunkRepository {
	return &ProspectusChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewProspectusChunkMapper(),
	}
}

// SearchSimilarWithScore returns chunks with similarity scores.
// Cosine distance in pgvector is: 1 - cosine_similarity
// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
func (r *ProspectusChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredProspectusChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.ProspectusChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("prospectus_chunks").
		Select("prospectus_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("prospectus_chunks.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scoredChunks := make([]*contract.ScoredProspectusChunk, len(results))
	for i, res := range results {
		scoredChunks[i] = &contract.ScoredProspectusChunk{
			Chunk:      r.mapper.ToEntity(&res.ProspectusChunk),
			Similarity: res.Similarity,
		}
	}
	return scoredChunks, nil
}

func (r *ProspectusChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProspectusChunk{}).Count(&count).Error
	return count, err
}
