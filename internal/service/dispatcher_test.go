package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordedBroadcast struct {
	Topic   websocket.Topic
	Payload interface{}
}

type fakeDelivery struct {
	mu         sync.Mutex
	broadcasts []recordedBroadcast
}

func (f *fakeDelivery) Broadcast(topic websocket.Topic, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, recordedBroadcast{Topic: topic, Payload: payload})
}

func (f *fakeDelivery) snapshot() []recordedBroadcast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedBroadcast(nil), f.broadcasts...)
}

func TestDispatcherFansOutMessage(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	delivery := &fakeDelivery{}

	dispatcher := NewDispatcherService(pubSub, constant.MessagePublishedTopic, delivery, testLogger{})
	assert.NoError(t, dispatcher.Consume(context.Background()))

	chatId := uuid.New()
	authorId := uuid.New()
	recipientA := uuid.New()
	recipientB := uuid.New()

	payload := dto.MessagePublishedPayload{
		ChatId:       chatId,
		MessageId:    uuid.New(),
		Content:      "uma mensagem bem longa que certamente passa do limite de cinquenta caracteres para o preview",
		AuthorId:     authorId,
		AuthorName:   "Ana",
		Timestamp:    time.Now().UTC(),
		RecipientIds: []uuid.UUID{recipientA, recipientB},
	}
	data, err := json.Marshal(payload)
	assert.NoError(t, err)

	publisher := NewPublisherService(constant.MessagePublishedTopic, pubSub)
	assert.NoError(t, publisher.Publish(context.Background(), data))

	assert.Eventually(t, func() bool {
		return len(delivery.snapshot()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	broadcasts := delivery.snapshot()

	// First broadcast carries the full message to the conversation topic.
	assert.Equal(t, websocket.ConversationTopic(chatId), broadcasts[0].Topic)
	full, ok := broadcasts[0].Payload.(dto.MessageNewEvent)
	assert.True(t, ok)
	assert.Equal(t, constant.EventMessageNew, full.Type)
	assert.Equal(t, payload.Content, full.Content)

	// The rest are truncated previews on the recipients' personal topics.
	topics := []websocket.Topic{broadcasts[1].Topic, broadcasts[2].Topic}
	assert.ElementsMatch(t, []websocket.Topic{websocket.UserTopic(recipientA), websocket.UserTopic(recipientB)}, topics)

	preview, ok := broadcasts[1].Payload.(dto.ChatNotificationEvent)
	assert.True(t, ok)
	assert.Equal(t, constant.EventChatMessage, preview.Type)
	assert.Equal(t, constant.PreviewRuneLimit, len([]rune(preview.Preview)))
	assert.Equal(t, "Ana", preview.AuthorName)
}

func TestDispatcherIgnoresMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	delivery := &fakeDelivery{}

	dispatcher := NewDispatcherService(pubSub, constant.MessagePublishedTopic, delivery, testLogger{})
	assert.NoError(t, dispatcher.Consume(context.Background()))

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	assert.NoError(t, pubSub.Publish(constant.MessagePublishedTopic, msg))

	// Malformed input is acked and dropped, nothing reaches the hub.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, delivery.snapshot())
}
