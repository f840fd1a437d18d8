package booking

import (
	"testing"
	"time"

	"femicare/models"
)

const testTTL = 6 * time.Hour

func apptAt(status, date string, start, end int, createdAt time.Time) *models.Appointment {
	return &models.Appointment{
		ID:        "appt-1",
		Status:    status,
		Date:      date,
		Start:     start,
		End:       end,
		CreatedAt: createdAt,
	}
}

func TestDisplayStatus(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	today := now.Format(models.DateLayout)

	cases := []struct {
		name string
		appt *models.Appointment
		want string
	}{
		{
			"fresh pending stays pending",
			apptAt(models.StatusPending, today, 900, 930, now.Add(-time.Hour)),
			models.StatusPending,
		},
		{
			"pending at the TTL boundary is still pending",
			apptAt(models.StatusPending, today, 900, 930, now.Add(-testTTL)),
			models.StatusPending,
		},
		{
			"pending beyond the TTL reads expired",
			apptAt(models.StatusPending, today, 900, 930, now.Add(-testTTL-time.Minute)),
			models.StatusExpired,
		},
		{
			"approved before the window is upcoming",
			apptAt(models.StatusApproved, today, 13*60, 14*60, now.Add(-time.Hour)),
			DisplayUpcoming,
		},
		{
			"approved inside the window is ongoing",
			apptAt(models.StatusApproved, today, 11*60, 13*60, now.Add(-time.Hour)),
			DisplayOngoing,
		},
		{
			"approved starting exactly now is ongoing",
			apptAt(models.StatusApproved, today, 12*60, 13*60, now.Add(-time.Hour)),
			DisplayOngoing,
		},
		{
			"approved after the window is completed",
			apptAt(models.StatusApproved, today, 9*60, 10*60, now.Add(-5*time.Hour)),
			models.StatusCompleted,
		},
		{
			"rejected passes through",
			apptAt(models.StatusRejected, today, 900, 930, now.Add(-time.Hour)),
			models.StatusRejected,
		},
		{
			"cancelled passes through",
			apptAt(models.StatusCancelled, today, 900, 930, now.Add(-time.Hour)),
			models.StatusCancelled,
		},
		{
			"expired passes through",
			apptAt(models.StatusExpired, today, 900, 930, now.Add(-24*time.Hour)),
			models.StatusExpired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DisplayStatus(tc.appt, now, testTTL)
			if got != tc.want {
				t.Fatalf("DisplayStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDisplayStatus_IsReadOnly(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	appt := apptAt(models.StatusPending, "2025-03-03", 900, 930, now.Add(-48*time.Hour))

	if got := DisplayStatus(appt, now, testTTL); got != models.StatusExpired {
		t.Fatalf("expected expired, got %q", got)
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("derivation must not write back, stored status changed to %q", appt.Status)
	}
}
