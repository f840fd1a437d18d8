// File: database/repository/chat/interface.go
package chatRepo

import (
	"context"

	"femicare/database"
	"femicare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ChatRepository persists appointment chat messages.
type ChatRepository interface {
	Save(ctx context.Context, msg *models.ChatMessage) error
	History(ctx context.Context, room string, limit int) ([]models.ChatMessage, error)
	EnsureIndexes() error
}

type mongoChatRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRepo constructs a new MongoDB ChatRepository.
func NewMongoChatRepo() ChatRepository {
	return &mongoChatRepo{coll: database.DB().Collection("chat_messages")}
}
