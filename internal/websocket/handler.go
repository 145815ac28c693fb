package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection with the hub and blocks until the peer
// disconnects.
func ServeWs(hub *Hub, conn *websocket.Conn, userID uuid.UUID) {
	client := NewClient(hub, conn, userID)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
