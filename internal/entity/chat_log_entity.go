package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatLog struct {
	Id          uuid.UUID
	SessionId   string
	Question    string
	Answer      string
	SourcePages []int
	CreatedAt   time.Time
}
