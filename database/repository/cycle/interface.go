// File: database/repository/cycle/interface.go
package cycleRepo

import (
	"context"

	"femicare/database"
	"femicare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CycleRepository persists menstrual-cycle logs.
type CycleRepository interface {
	Create(ctx context.Context, log *models.CycleLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CycleLog, error)
	Latest(ctx context.Context, userID string) (*models.CycleLog, error)
	EnsureIndexes() error
}

type mongoCycleRepo struct {
	coll *mongo.Collection
}

// NewMongoCycleRepo constructs a new MongoDB CycleRepository.
func NewMongoCycleRepo() CycleRepository {
	return &mongoCycleRepo{coll: database.DB().Collection("cycle_logs")}
}
