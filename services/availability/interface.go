// File: services/availability/interface.go
package availability

import (
	"context"
	"time"

	"femicare/models"
)

// Service manages a doctor's availability slots and what patients may see of
// them.
type Service interface {
	Generate(ctx context.Context, doctorID string, req models.GenerateSlotsRequest) (int, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error)
	ListBookable(ctx context.Context, doctorID string) ([]models.SlotListing, error)
	SetActive(ctx context.Context, doctorID, slotID string, active bool) error
	Delete(ctx context.Context, doctorID, slotID string) error
}

// SlotStore is the subset of the slot repository the service depends on.
type SlotStore interface {
	CreateMany(ctx context.Context, slots []models.AvailabilitySlot) (int, error)
	ExistingStarts(ctx context.Context, doctorID, fromDate, toDate string) (map[string]struct{}, error)
	ListByDoctor(ctx context.Context, doctorID string, fromDate string) ([]models.AvailabilitySlot, error)
	ListBookable(ctx context.Context, doctorID, fromDate string) ([]models.AvailabilitySlot, error)
	SetActive(ctx context.Context, doctorID, slotID string, active bool) error
	DeleteByID(ctx context.Context, doctorID, slotID string) error
}

// DoctorDirectory answers whether a doctor may be publicly listed.
type DoctorDirectory interface {
	GetProfile(ctx context.Context, doctorUserID string) (*models.DoctorProfile, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Slots       SlotStore
	Doctors     DoctorDirectory
	HorizonDays int
	Now         func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) horizon() int {
	if s.HorizonDays > 0 {
		return s.HorizonDays
	}
	return 14
}
