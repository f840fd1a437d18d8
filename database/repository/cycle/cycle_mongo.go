// File: database/repository/cycle/cycle_mongo.go
package cycleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"femicare/models"
)

func (r *mongoCycleRepo) Create(ctx context.Context, log *models.CycleLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("insert cycle log: %w", err)
	}
	return nil
}

func (r *mongoCycleRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.CycleLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch cycle logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []models.CycleLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode cycle logs: %w", err)
	}
	return logs, nil
}

// Latest returns the most recent log, or nil when the user has none.
func (r *mongoCycleRepo) Latest(ctx context.Context, userID string) (*models.CycleLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var log models.CycleLog
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest cycle log: %w", err)
	}
	return &log, nil
}

// EnsureIndexes creates the necessary indexes on the cycle_logs collection.
func (r *mongoCycleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create cycle log indexes: %w", err)
	}
	return nil
}
