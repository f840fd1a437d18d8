package models

import "time"

// DateLayout is the calendar-date encoding used across slots and appointments.
const DateLayout = "2006-01-02"

// AvailabilitySlot is a doctor's discrete bookable time window.
// Start and End are minutes from midnight (e.g., 540 for 9:00 AM).
type AvailabilitySlot struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctorId" json:"doctorId"`
	Date      string    `bson:"date" json:"date"` // "2006-01-02"
	Start     int       `bson:"start" json:"start"`
	End       int       `bson:"end" json:"end"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// StartAt resolves the slot's opening wall-clock instant in loc.
func (s *AvailabilitySlot) StartAt(loc *time.Location) time.Time {
	return slotInstant(s.Date, s.Start, loc)
}

// EndAt resolves the slot's closing wall-clock instant in loc.
func (s *AvailabilitySlot) EndAt(loc *time.Location) time.Time {
	return slotInstant(s.Date, s.End, loc)
}

func slotInstant(date string, minutes int, loc *time.Location) time.Time {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}
	}
	return d.Add(time.Duration(minutes) * time.Minute)
}

// GenerateSlotsRequest is the payload a doctor submits to expand a weekly
// template into concrete slots.
type GenerateSlotsRequest struct {
	Weekdays []time.Weekday `json:"weekdays" binding:"required"`
	Start    int            `json:"start"`    // minutes from midnight
	End      int            `json:"end"`      // minutes from midnight
	Duration int            `json:"duration"` // minutes per slot
}

// SlotListing is the patient-facing view of a bookable slot.
type SlotListing struct {
	ID       string `json:"id"`
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}
