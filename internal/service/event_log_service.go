package service

import (
	"context"
	"encoding/json"

	"ai-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IEventLogService interface {
	Consume(ctx context.Context) error
}

// eventLogService drains the in-process event topic and mirrors every event
// into the structured log.
type eventLogService struct {
	subscriber message.Subscriber
	topicName  string
	log        logger.ILogger
}

func NewEventLogService(subscriber message.Subscriber, topicName string, log logger.ILogger) IEventLogService {
	return &eventLogService{
		subscriber: subscriber,
		topicName:  topicName,
		log:        log,
	}
}

func (s *eventLogService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *eventLogService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var envelope map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.log.Warn("events", "discarding malformed event payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	s.log.Info("events", "event published", envelope)
}
