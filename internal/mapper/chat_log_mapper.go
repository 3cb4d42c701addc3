package mapper

import (
	"prospectus-rag-be/internal/entity"
	"prospectus-rag-be/internal/model"

	"gorm.io/datatypes"
)

type ChatLogMapper struct{}

func NewChatLogMapper() *ChatLogMapper {
	return &ChatLogMapper{}
}

func (m *ChatLogMapper) ToEntity(l *model.ChatLog) *entity.ChatLog {
	if l == nil {
		return nil
	}

	return &entity.ChatLog{
		Id:          l.Id,
		SessionId:   l.SessionId,
		Question:    l.Question,
		Answer:      l.Answer,
		SourcePages: []int(l.SourcePages),
		CreatedAt:   l.CreatedAt,
	}
}

func (m *ChatLogMapper) ToModel(l *entity.ChatLog) *model.ChatLog {
	if l == nil {
		return nil
	}

	return &model.ChatLog{
		Id:          l.Id,
		SessionId:   l.SessionId,
		Question:    l.Question,
		Answer:      l.Answer,
		SourcePages: datatypes.NewJSONSlice(l.SourcePages),
		CreatedAt:   l.CreatedAt,
	}
}

func (m *ChatLogMapper) ToEntities(logs []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
