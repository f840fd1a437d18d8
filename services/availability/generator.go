// File: services/availability/generator.go
package availability

import (
	"fmt"
	"time"

	"femicare/models"
)

// ExpandTemplate turns a doctor's weekly template into concrete slots covering
// every matching weekday from the day containing `now` through `now` plus the
// horizon, inclusive. Slots are contiguous duration-sized steps from start to
// end; a step that would overrun the end is dropped, not truncated. Any
// (date, start) present in `existing` (keys "date|start") is skipped, which
// makes a re-run with unchanged inputs insert nothing.
func ExpandTemplate(
	doctorID string,
	weekdays []time.Weekday,
	startMin, endMin, durationMin int,
	horizonDays int,
	now time.Time,
	existing map[string]struct{},
) ([]models.AvailabilitySlot, error) {
	if len(weekdays) == 0 {
		return nil, NewValidationError("select at least one day")
	}
	if durationMin <= 0 {
		return nil, NewValidationError("slot duration must be positive")
	}
	if startMin < 0 || endMin > 24*60 {
		return nil, NewValidationError("start and end must fall within the day")
	}
	if startMin >= endMin {
		return nil, NewValidationError("start time must be before end time")
	}

	selected := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		selected[wd] = true
	}

	var slots []models.AvailabilitySlot
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for offset := 0; offset <= horizonDays; offset++ {
		d := day.AddDate(0, 0, offset)
		if !selected[d.Weekday()] {
			continue
		}
		date := d.Format(models.DateLayout)
		// A step end exactly on the limit still fits.
		for t := startMin; t+durationMin <= endMin; t += durationMin {
			if _, dup := existing[fmt.Sprintf("%s|%d", date, t)]; dup {
				continue
			}
			slots = append(slots, models.AvailabilitySlot{
				DoctorID:  doctorID,
				Date:      date,
				Start:     t,
				End:       t + durationMin,
				Active:    true,
				CreatedAt: now,
			})
		}
	}
	return slots, nil
}
