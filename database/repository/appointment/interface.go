// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"femicare/database"
	slotRepo "femicare/database/repository/slot"
	"femicare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrAppointmentNotFound is returned when an appointment id does not resolve.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned when the transactional book loses the race for a slot.
	ErrSlotTaken = errors.New("slot no longer available")
	// ErrInvalidTransition is returned when a guarded status update matches nothing.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// AppointmentRepository persists patient appointments.
type AppointmentRepository interface {
	// BookTransactionally inserts the appointment and flips its slot inactive
	// as one atomic unit. Exactly one concurrent caller per slot succeeds.
	BookTransactionally(ctx context.Context, appt *models.Appointment) error

	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)

	// CountActiveOnDate counts pending/approved appointments the patient holds
	// on a calendar date. doctorID narrows the count when the per-doctor
	// conflict policy is configured; empty means any doctor.
	CountActiveOnDate(ctx context.Context, patientID, date, doctorID string) (int64, error)

	// CountByStatus counts all appointments with the given persisted status.
	CountByStatus(ctx context.Context, status string) (int64, error)

	// UpdateStatus performs a guarded transition from -> to.
	UpdateStatus(ctx context.Context, id, from, to string, set map[string]interface{}) (*models.Appointment, error)

	// FindPendingBefore returns pending appointments created before cutoff.
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
	// FindApprovedEndedBy returns approved appointments whose window closed at
	// or before the given date/minute position.
	FindApprovedEndedBy(ctx context.Context, today string, nowMinutes int) ([]models.Appointment, error)

	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll  *mongo.Collection
	slots slotRepo.SlotRepository
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository. The
// slot repository supplies the conditional claim the booking transaction runs.
func NewMongoAppointmentRepo(slots slotRepo.SlotRepository) AppointmentRepository {
	return &mongoAppointmentRepo{
		coll:  database.DB().Collection("appointments"),
		slots: slots,
	}
}
