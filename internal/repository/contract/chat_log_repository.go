package contract

import (
	"context"

	"prospectus-rag-be/internal/entity"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *entity.ChatLog) error

	// FindBySessionId returns the persisted turns for one session, oldest first.
	FindBySessionId(ctx context.Context, sessionId string) ([]*entity.ChatLog, error)
}
