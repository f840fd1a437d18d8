// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	"femicare/models"
	"femicare/services/notification"
)

// Conflict-rule scopes for the one-active-appointment-per-day policy.
const (
	ScopeAnyDoctor = "any-doctor"
	ScopePerDoctor = "per-doctor"
)

// Service is the booking engine: it claims slots for patients and drives the
// appointment lifecycle.
type Service interface {
	Book(ctx context.Context, patientID, slotID, reason string) (*models.Appointment, error)
	Approve(ctx context.Context, doctorID, apptID string) (*models.Appointment, error)
	Reject(ctx context.Context, doctorID, apptID, reason string) (*models.Appointment, error)
	Cancel(ctx context.Context, patientID, apptID string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.AppointmentView, error)
	Get(ctx context.Context, callerID, apptID string) (*models.AppointmentView, error)
}

// SlotClaimer is the subset of the slot repository the engine depends on.
type SlotClaimer interface {
	GetByID(ctx context.Context, slotID string) (*models.AvailabilitySlot, error)
	Release(ctx context.Context, slotID string) error
	SetActive(ctx context.Context, doctorID, slotID string, active bool) error
}

// AppointmentStore is the subset of the appointment repository the engine
// depends on.
type AppointmentStore interface {
	BookTransactionally(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	CountActiveOnDate(ctx context.Context, patientID, date, doctorID string) (int64, error)
	UpdateStatus(ctx context.Context, id, from, to string, set map[string]interface{}) (*models.Appointment, error)
}

// DoctorDirectory answers booking preconditions about the doctor.
type DoctorDirectory interface {
	GetProfile(ctx context.Context, doctorUserID string) (*models.DoctorProfile, error)
}

// UserDirectory resolves user accounts for notification delivery.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Slots         SlotClaimer
	Appointments  AppointmentStore
	Doctors       DoctorDirectory
	Users         UserDirectory
	Notifier      notification.NotificationService
	ConflictScope string
	PendingTTL    time.Duration
	Now           func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) pendingTTL() time.Duration {
	if s.PendingTTL > 0 {
		return s.PendingTTL
	}
	return 6 * time.Hour
}
