package websocket

import (
	"encoding/json"
	"sync"

	"campus-connect-be/internal/pkg/logger"
)

// Hub tracks which clients are subscribed to which topics. One client can sit
// on several topics and one topic holds several clients; both directions are
// kept so unregistering a dying client never scans the whole table.
type Hub struct {
	mu     sync.RWMutex
	topics map[Topic]map[*Client]struct{}

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		topics: make(map[Topic]map[*Client]struct{}),
		logger: log,
	}
}

// Register subscribes the client to a topic. Idempotent.
func (h *Hub) Register(topic Topic, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.topics[topic]
	if !ok {
		set = make(map[*Client]struct{})
		h.topics[topic] = set
	}
	set[client] = struct{}{}
	client.topics[topic] = struct{}{}

	h.logger.Info("Hub", "Client registered", map[string]interface{}{"topic": string(topic)})
}

// Unregister removes the client from a topic, dropping the topic entry when
// it empties. Idempotent.
func (h *Hub) Unregister(topic Topic, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(topic, client)
}

func (h *Hub) removeLocked(topic Topic, client *Client) {
	set, ok := h.topics[topic]
	if !ok {
		return
	}
	if _, subscribed := set[client]; !subscribed {
		return
	}
	delete(set, client)
	delete(client.topics, topic)
	if len(set) == 0 {
		delete(h.topics, topic)
	}
}

// Drop removes the client from every topic it is subscribed to and closes
// its send channel. Used when the connection dies.
func (h *Hub) Drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range client.topics {
		h.removeLocked(topic, client)
	}
	client.closeSend()
}

// Snapshot returns the clients currently on a topic. The returned slice is a
// copy, safe to iterate while (un)registrations continue.
func (h *Hub) Snapshot(topic Topic) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.topics[topic]
	clients := make([]*Client, 0, len(set))
	for client := range set {
		clients = append(clients, client)
	}
	return clients
}

// Broadcast serializes the payload once and delivers it to every client on
// the topic. A client whose send buffer is full is dropped rather than
// allowed to stall everyone else.
func (h *Hub) Broadcast(topic Topic, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Hub", "Broadcast payload marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	var stalled []*Client
	h.mu.RLock()
	for client := range h.topics[topic] {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"topic": string(topic)})
		h.Drop(client)
	}
}
