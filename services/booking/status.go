// File: services/booking/status.go
package booking

import (
	"time"

	"femicare/models"
)

// Display-only classifications layered over the persisted status at read time.
const (
	DisplayUpcoming = "upcoming"
	DisplayOngoing  = "ongoing"
)

// DisplayStatus classifies an appointment for presentation. It is a pure
// function of the persisted status, the slot window and the given instant; it
// never writes anything back, so viewing an appointment has no side effects.
//
// A pending appointment older than pendingTTL reads as expired even though the
// stored status still says pending; the background sweep persists that
// transition later. An approved appointment reads as upcoming, ongoing or
// completed depending on where `now` falls relative to [start, end].
func DisplayStatus(appt *models.Appointment, now time.Time, pendingTTL time.Duration) string {
	switch appt.Status {
	case models.StatusPending:
		if now.Sub(appt.CreatedAt) > pendingTTL {
			return models.StatusExpired
		}
		return models.StatusPending

	case models.StatusApproved:
		start := appt.StartAt(now.Location())
		end := appt.EndAt(now.Location())
		switch {
		case now.Before(start):
			return DisplayUpcoming
		case now.After(end):
			return models.StatusCompleted
		default:
			return DisplayOngoing
		}

	default:
		return appt.Status
	}
}
