package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"prospectus-rag-be/internal/dto"
	"prospectus-rag-be/internal/entity"
	"prospectus-rag-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists published chat turns to the chat_logs table.
// The trail is best-effort: failures are logged and retried via Nack, and
// never affect the request that produced the turn.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	chatLogRepo contract.ChatLogRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	chatLogRepo contract.ChatLogRepository,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		chatLogRepo: chatLogRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatTranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal transcript message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	chatLog := &entity.ChatLog{
		Id:          uuid.New(),
		SessionId:   payload.SessionId,
		Question:    payload.Question,
		Answer:      payload.Answer,
		SourcePages: payload.SourcePages,
		CreatedAt:   time.Now(),
	}

	if err := cs.chatLogRepo.Create(ctx, chatLog); err != nil {
		log.Printf("[ERROR] Failed to persist transcript for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
