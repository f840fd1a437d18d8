// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"femicare/models"
)

func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.AvailabilitySlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		docs[i] = slot
	}

	// Unordered insert so one duplicate (unique index on doctor/date/start)
	// does not abort the whole batch.
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		if bwe, ok := err.(mongo.BulkWriteException); ok {
			for _, we := range bwe.WriteErrors {
				if we.Code != 11000 {
					return len(res.InsertedIDs), fmt.Errorf("failed to insert slots: %w", err)
				}
			}
			return len(res.InsertedIDs), nil
		}
		return 0, fmt.Errorf("failed to insert slots: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.AvailabilitySlot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) SetActive(ctx context.Context, doctorID, slotID string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID, "doctorId": doctorID},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return fmt.Errorf("update slot active flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *mongoSlotRepo) DeleteByID(ctx context.Context, doctorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID, "doctorId": doctorID})
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// DeleteExpired removes slots whose window has fully passed: any date before
// today, or today's slots that already ended.
func (r *mongoSlotRepo) DeleteExpired(ctx context.Context, today string, nowMinutes int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"date": bson.M{"$lt": today}},
		bson.M{"date": today, "end": bson.M{"$lt": nowMinutes}},
	}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete expired slots: %w", err)
	}
	return res.DeletedCount, nil
}
