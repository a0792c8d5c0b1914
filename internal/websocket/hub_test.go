package websocket

import (
	"encoding/json"
	"testing"

	"campus-connect-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

func testClient(hub *Hub, buffer int) *Client {
	return &Client{
		hub:    hub,
		Send:   make(chan []byte, buffer),
		topics: make(map[Topic]struct{}),
	}
}

func TestHubRegisterAndSnapshot(t *testing.T) {
	hub := NewHub(nopLogger{})
	topic := ConversationTopic(uuid.New())
	client := testClient(hub, 1)

	hub.Register(topic, client)
	hub.Register(topic, client) // idempotent

	assert.Len(t, hub.Snapshot(topic), 1)

	hub.Unregister(topic, client)
	assert.Empty(t, hub.Snapshot(topic))

	// removing again must not panic
	hub.Unregister(topic, client)
}

func TestHubBroadcastDeliversToTopicOnly(t *testing.T) {
	hub := NewHub(nopLogger{})
	topicA := ConversationTopic(uuid.New())
	topicB := ConversationTopic(uuid.New())

	onA := testClient(hub, 4)
	onB := testClient(hub, 4)
	hub.Register(topicA, onA)
	hub.Register(topicB, onB)

	hub.Broadcast(topicA, map[string]string{"type": "test", "value": "hello"})

	assert.Len(t, onA.Send, 1)
	assert.Empty(t, onB.Send)

	var decoded map[string]string
	assert.NoError(t, json.Unmarshal(<-onA.Send, &decoded))
	assert.Equal(t, "hello", decoded["value"])
}

func TestHubBroadcastDropsStalledClient(t *testing.T) {
	hub := NewHub(nopLogger{})
	topic := UserTopic(uuid.New())

	stalled := testClient(hub, 1)
	healthy := testClient(hub, 4)
	hub.Register(topic, stalled)
	hub.Register(topic, healthy)

	// Fill the stalled client's buffer so the next delivery cannot land.
	stalled.Send <- []byte("backlog")

	hub.Broadcast(topic, map[string]string{"type": "test"})

	remaining := hub.Snapshot(topic)
	assert.Len(t, remaining, 1)
	assert.Same(t, healthy, remaining[0])
	assert.Len(t, healthy.Send, 1)

	// Send channel of the dropped client is closed.
	<-stalled.Send // drain backlog
	_, open := <-stalled.Send
	assert.False(t, open)
}

func TestHubDropRemovesFromAllTopics(t *testing.T) {
	hub := NewHub(nopLogger{})
	conversation := ConversationTopic(uuid.New())
	personal := UserTopic(uuid.New())

	client := testClient(hub, 1)
	hub.Register(conversation, client)
	hub.Register(personal, client)

	hub.Drop(client)

	assert.Empty(t, hub.Snapshot(conversation))
	assert.Empty(t, hub.Snapshot(personal))

	// double drop must not panic on the closed channel
	hub.Drop(client)
}

func TestTopicNames(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, Topic("conversation:11111111-2222-3333-4444-555555555555"), ConversationTopic(id))
	assert.Equal(t, Topic("user:11111111-2222-3333-4444-555555555555"), UserTopic(id))
}
