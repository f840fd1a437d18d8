// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"femicare/database"
	"femicare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotUnavailable is returned when a conditional claim matches no active slot.
var ErrSlotUnavailable = errors.New("slot no longer available")

// ErrSlotNotFound is returned when a slot id does not resolve.
var ErrSlotNotFound = errors.New("slot not found")

// SlotRepository persists doctor availability slots.
type SlotRepository interface {
	CreateMany(ctx context.Context, slots []models.AvailabilitySlot) (int, error)
	GetByID(ctx context.Context, slotID string) (*models.AvailabilitySlot, error)
	ExistingStarts(ctx context.Context, doctorID, fromDate, toDate string) (map[string]struct{}, error)
	ListByDoctor(ctx context.Context, doctorID string, fromDate string) ([]models.AvailabilitySlot, error)
	ListBookable(ctx context.Context, doctorID, fromDate string) ([]models.AvailabilitySlot, error)
	SetActive(ctx context.Context, doctorID, slotID string, active bool) error
	DeleteByID(ctx context.Context, doctorID, slotID string) error
	DeleteExpired(ctx context.Context, today string, nowMinutes int) (int64, error)

	// Claim flips an active slot to inactive; exactly one concurrent caller
	// can win. Release is the inverse, used on rejection/cancellation.
	Claim(ctx context.Context, slotID string) (*models.AvailabilitySlot, error)
	Release(ctx context.Context, slotID string) error

	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{coll: database.DB().Collection("slots")}
}
