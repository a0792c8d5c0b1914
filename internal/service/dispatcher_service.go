package service

import (
	"context"
	"encoding/json"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// RealtimeDelivery is what the dispatcher needs from the hub.
type RealtimeDelivery interface {
	Broadcast(topic websocket.Topic, payload interface{})
}

type IDispatcherService interface {
	Consume(ctx context.Context) error
}

type dispatcherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  RealtimeDelivery
	logger    logger.ILogger
}

func NewDispatcherService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery RealtimeDelivery,
	log logger.ILogger,
) IDispatcherService {
	return &dispatcherService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

func (ds *dispatcherService) Consume(ctx context.Context) error {
	messages, err := ds.pubSub.Subscribe(ctx, ds.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ds.processMessage(msg)
		}
	}()

	return nil
}

func (ds *dispatcherService) processMessage(msg *message.Message) {
	var payload dto.MessagePublishedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ds.logger.Error("Dispatcher", "Failed to unmarshal message payload", map[string]interface{}{"error": err.Error()})
		// Ack malformed messages, retrying cannot fix them.
		msg.Ack()
		return
	}

	// Full event for sockets watching the conversation.
	authorId := payload.AuthorId
	ds.delivery.Broadcast(websocket.ConversationTopic(payload.ChatId), dto.MessageNewEvent{
		Type:       constant.EventMessageNew,
		ChatId:     payload.ChatId,
		MessageId:  payload.MessageId,
		Content:    payload.Content,
		AuthorId:   &authorId,
		AuthorName: payload.AuthorName,
		Timestamp:  payload.Timestamp,
	})

	// Truncated preview to each recipient's personal topic. The author is
	// already excluded from RecipientIds.
	notification := dto.ChatNotificationEvent{
		Type:       constant.EventChatMessage,
		ChatId:     payload.ChatId,
		Preview:    truncateRunes(payload.Content, constant.PreviewRuneLimit),
		AuthorId:   payload.AuthorId,
		AuthorName: payload.AuthorName,
		Timestamp:  payload.Timestamp,
	}
	for _, recipientId := range payload.RecipientIds {
		ds.delivery.Broadcast(websocket.UserTopic(recipientId), notification)
	}

	msg.Ack()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
