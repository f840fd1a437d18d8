package models

import "time"

// Persisted appointment statuses. Display-only classifications (upcoming,
// ongoing, and time-derived expiry) are computed at read time and never stored.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// NonTerminalStatuses are the statuses under which an appointment still claims
// its slot.
var NonTerminalStatuses = []string{StatusPending, StatusApproved}

// Appointment is a patient's claim on exactly one availability slot.
// Date, Start and End are denormalized from the slot so listings and display
// derivation do not need a join.
type Appointment struct {
	ID              string     `bson:"id" json:"id"`
	PatientID       string     `bson:"patientId" json:"patientId"`
	DoctorID        string     `bson:"doctorId" json:"doctorId"`
	SlotID          string     `bson:"slotId" json:"slotId"`
	Date            string     `bson:"date" json:"date"` // "2006-01-02"
	Start           int        `bson:"start" json:"start"`
	End             int        `bson:"end" json:"end"`
	Reason          string     `bson:"reason,omitempty" json:"reason,omitempty"`
	Status          string     `bson:"status" json:"status"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	RespondedAt     *time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// StartAt resolves the appointment window's opening instant in loc.
func (a *Appointment) StartAt(loc *time.Location) time.Time {
	return slotInstant(a.Date, a.Start, loc)
}

// EndAt resolves the appointment window's closing instant in loc.
func (a *Appointment) EndAt(loc *time.Location) time.Time {
	return slotInstant(a.Date, a.End, loc)
}

// BookSlotRequest is the payload a patient submits to claim a slot.
type BookSlotRequest struct {
	SlotID string `json:"slotId" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// RejectAppointmentRequest carries the mandatory rejection reason.
type RejectAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AppointmentView pairs the persisted record with its read-time display status.
type AppointmentView struct {
	Appointment
	DisplayStatus string `json:"displayStatus"`
}
