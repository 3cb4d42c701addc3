package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProspectusChunk struct {
	Id             uuid.UUID
	Content        string
	EmbeddingValue []float32
	Page           *int
	SourceFile     string
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
