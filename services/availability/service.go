// File: services/availability/service.go
package availability

import (
	"context"
	"fmt"

	"femicare/models"
	"femicare/utils"

	"go.uber.org/zap"
)

// Generate expands the doctor's weekly template into concrete slots within the
// horizon and inserts only the ones that do not exist yet.
func (s *DefaultAvailabilityService) Generate(ctx context.Context, doctorID string, req models.GenerateSlotsRequest) (int, error) {
	now := s.now()
	fromDate := now.Format(models.DateLayout)
	toDate := now.AddDate(0, 0, s.horizon()).Format(models.DateLayout)

	existing, err := s.Slots.ExistingStarts(ctx, doctorID, fromDate, toDate)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing slots: %w", err)
	}

	slots, err := ExpandTemplate(doctorID, req.Weekdays, req.Start, req.End, req.Duration, s.horizon(), now, existing)
	if err != nil {
		return 0, err
	}
	if len(slots) == 0 {
		return 0, nil
	}

	inserted, err := s.Slots.CreateMany(ctx, slots)
	if err != nil {
		return inserted, fmt.Errorf("failed to create slots: %w", err)
	}

	utils.GetLogger().Info("availability generated",
		zap.String("doctorId", doctorID),
		zap.Int("inserted", inserted),
	)
	return inserted, nil
}

func (s *DefaultAvailabilityService) ListForDoctor(ctx context.Context, doctorID string) ([]models.AvailabilitySlot, error) {
	return s.Slots.ListByDoctor(ctx, doctorID, "")
}

// ListBookable returns the slots a patient may book from the given doctor:
// active, doctor verified with a complete profile, date today or later, and a
// start strictly in the future when the slot is today.
func (s *DefaultAvailabilityService) ListBookable(ctx context.Context, doctorID string) ([]models.SlotListing, error) {
	profile, err := s.Doctors.GetProfile(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !profile.Bookable() {
		return nil, nil
	}

	now := s.now()
	today := now.Format(models.DateLayout)
	nowMinutes := now.Hour()*60 + now.Minute()

	slots, err := s.Slots.ListBookable(ctx, doctorID, today)
	if err != nil {
		return nil, err
	}

	listings := make([]models.SlotListing, 0, len(slots))
	for _, slot := range slots {
		if slot.Date == today && slot.Start <= nowMinutes {
			continue
		}
		listings = append(listings, models.SlotListing{
			ID:       slot.ID,
			DoctorID: slot.DoctorID,
			Date:     slot.Date,
			Start:    slot.Start,
			End:      slot.End,
		})
	}
	return listings, nil
}

func (s *DefaultAvailabilityService) SetActive(ctx context.Context, doctorID, slotID string, active bool) error {
	return s.Slots.SetActive(ctx, doctorID, slotID, active)
}

func (s *DefaultAvailabilityService) Delete(ctx context.Context, doctorID, slotID string) error {
	return s.Slots.DeleteByID(ctx, doctorID, slotID)
}
