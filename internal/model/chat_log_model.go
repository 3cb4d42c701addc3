package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatLog struct {
	Id          uuid.UUID                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string                   `gorm:"type:varchar(255);not null;index"`
	Question    string                   `gorm:"type:text;not null"`
	Answer      string                   `gorm:"type:text;not null"`
	SourcePages datatypes.JSONSlice[int] `gorm:"type:jsonb"`
	CreatedAt   time.Time                `gorm:"autoCreateTime"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
