package models

import "time"

// ChatMessage is one persisted message in an appointment's chat room.
// Room is the appointment ID. IsNote marks a doctor-authored note.
type ChatMessage struct {
	ID         string    `bson:"id" json:"id"`
	Room       string    `bson:"room" json:"room"`
	SenderID   string    `bson:"senderId" json:"senderId"`
	SenderName string    `bson:"senderName" json:"senderName"`
	Message    string    `bson:"message" json:"message"`
	IsNote     bool      `bson:"isNote" json:"isNote"`
	SentAt     time.Time `bson:"sentAt" json:"sentAt"`
}

// ChatInbound is what a connected client sends over the socket.
type ChatInbound struct {
	Message string `json:"message"`
	IsNote  bool   `json:"is_note"`
}

// ChatOutbound is what the hub fans out to every client in the room.
type ChatOutbound struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
	IsNote  bool   `json:"is_note"`
}
