// File: services/chat/hub.go
// Package chat provides the real-time consultation channel between a patient
// and their doctor. Each approved appointment gets its own room, and the hub
// fans messages out to everyone connected to that room.
package chat

import (
	"encoding/json"
	"sync"

	"femicare/models"
	"femicare/utils"

	"go.uber.org/zap"
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one connected participant in an appointment room.
type Client struct {
	UserID string
	Name   string
	Room   string
	Send   chan []byte
	conn   Conn
}

// Hub tracks connected clients per room. All operations are thread-safe.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewHub creates a Hub ready to manage chat clients.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Register adds a client to its room.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[client.Room] == nil {
		h.rooms[client.Room] = make(map[*Client]struct{})
	}
	h.rooms[client.Room][client] = struct{}{}
}

// Unregister removes a client from its room and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[client.Room]
	if !ok {
		return
	}
	if _, ok := members[client]; !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, client.Room)
	}
	close(client.Send)
}

// Broadcast fans a message out to every client in the room.
func (h *Hub) Broadcast(room string, out models.ChatOutbound) {
	data, err := json.Marshal(out)
	if err != nil {
		utils.GetLogger().Error("failed to marshal chat message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// RoomCount returns the number of clients connected to a room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
