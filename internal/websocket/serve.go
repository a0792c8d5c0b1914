package websocket

import "github.com/gofiber/websocket/v2"

// Serve subscribes the connection to the given topics and blocks until the
// peer disconnects. Must be called from inside the websocket handler.
func Serve(hub *Hub, conn *websocket.Conn, topics ...Topic) {
	client := newClient(hub, conn)
	for _, topic := range topics {
		hub.Register(topic, client)
	}

	go client.writePump()
	client.readPump()
}
