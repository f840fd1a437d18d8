// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"femicare/models"
)

// ExistingStarts returns the set of "date|start" keys already present for the
// doctor within [fromDate, toDate]. The generator uses it to skip duplicates.
func (r *mongoSlotRepo) ExistingStarts(ctx context.Context, doctorID, fromDate, toDate string) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"date":     bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetProjection(bson.M{"date": 1, "start": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch existing slot starts: %w", err)
	}
	defer cursor.Close(ctx)

	existing := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			Date  string `bson:"date"`
			Start int    `bson:"start"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode slot start: %w", err)
		}
		existing[fmt.Sprintf("%s|%d", doc.Date, doc.Start)] = struct{}{}
	}
	return existing, cursor.Err()
}

func (r *mongoSlotRepo) ListByDoctor(ctx context.Context, doctorID string, fromDate string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID}
	if fromDate != "" {
		filter["date"] = bson.M{"$gte": fromDate}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch doctor slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("decode doctor slots: %w", err)
	}
	return slots, nil
}

// ListBookable returns active slots from fromDate onward, sorted by date and
// start. Same-day slots whose start has passed are filtered by the caller,
// which owns the clock.
func (r *mongoSlotRepo) ListBookable(ctx context.Context, doctorID, fromDate string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"active":   true,
		"date":     bson.M{"$gte": fromDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch bookable slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("decode bookable slots: %w", err)
	}
	return slots, nil
}
