package availability

import (
	"fmt"
	"testing"
	"time"

	"femicare/models"
)

// mondayAnchor is a Monday, so weekday math in the tests is predictable.
var mondayAnchor = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func TestExpandTemplate_WeeklyTemplate(t *testing.T) {
	slots, err := ExpandTemplate(
		"doc-1",
		[]time.Weekday{time.Monday, time.Wednesday},
		9*60, 10*60, 30,
		14,
		mondayAnchor,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 Mondays (days 0, 7, 14) + 2 Wednesdays (days 2, 9) inside the
	// inclusive horizon, two half-hour slots per day.
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}

	first := slots[0]
	if first.Date != "2025-03-03" || first.Start != 540 || first.End != 570 {
		t.Fatalf("unexpected first slot: %+v", first)
	}
	if !first.Active {
		t.Fatalf("generated slots must start active")
	}
	for _, s := range slots {
		if s.DoctorID != "doc-1" {
			t.Fatalf("slot carries wrong doctor: %+v", s)
		}
		if s.End-s.Start != 30 {
			t.Fatalf("slot is not duration-sized: %+v", s)
		}
	}
}

func TestExpandTemplate_DropsOverrunningStep(t *testing.T) {
	// 09:00 to 10:15 with 30-minute steps: 09:00 and 09:30 fit, 10:00 would
	// overrun and must be dropped.
	slots, err := ExpandTemplate("doc-1", []time.Weekday{time.Monday}, 540, 615, 30, 0, mondayAnchor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].End != 600 {
		t.Fatalf("last slot should end at 10:00, got %d", slots[1].End)
	}
}

func TestExpandTemplate_ExactFitKeepsBoundarySlot(t *testing.T) {
	// 09:00 to 10:00 in 30-minute steps: the 09:30 slot ends exactly on the
	// limit and must be kept.
	slots, err := ExpandTemplate("doc-1", []time.Weekday{time.Monday}, 540, 600, 30, 0, mondayAnchor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestExpandTemplate_SkipsExistingStarts(t *testing.T) {
	existing := map[string]struct{}{
		fmt.Sprintf("%s|%d", "2025-03-03", 540): {},
	}
	slots, err := ExpandTemplate("doc-1", []time.Weekday{time.Monday}, 540, 600, 30, 0, mondayAnchor, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected only the non-duplicate slot, got %d", len(slots))
	}
	if slots[0].Start != 570 {
		t.Fatalf("expected the 09:30 slot, got start %d", slots[0].Start)
	}
}

func TestExpandTemplate_Rerun_IsIdempotent(t *testing.T) {
	first, err := ExpandTemplate("doc-1", []time.Weekday{time.Monday}, 540, 600, 30, 14, mondayAnchor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := make(map[string]struct{}, len(first))
	for _, s := range first {
		existing[fmt.Sprintf("%s|%d", s.Date, s.Start)] = struct{}{}
	}

	second, err := ExpandTemplate("doc-1", []time.Weekday{time.Monday}, 540, 600, 30, 14, mondayAnchor, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("re-run with unchanged inputs should generate nothing, got %d", len(second))
	}
}

func TestExpandTemplate_Validation(t *testing.T) {
	cases := []struct {
		name     string
		weekdays []time.Weekday
		start    int
		end      int
		duration int
	}{
		{"no weekdays", nil, 540, 600, 30},
		{"zero duration", []time.Weekday{time.Monday}, 540, 600, 0},
		{"start after end", []time.Weekday{time.Monday}, 600, 540, 30},
		{"end past midnight", []time.Weekday{time.Monday}, 540, 25 * 60, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExpandTemplate("doc-1", tc.weekdays, tc.start, tc.end, tc.duration, 14, mondayAnchor, nil)
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestParseGenerateRequest(t *testing.T) {
	req, err := ParseGenerateRequest([]string{"Monday", "wed"}, "09:00", "17:00", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Weekdays) != 2 || req.Weekdays[0] != time.Monday || req.Weekdays[1] != time.Wednesday {
		t.Fatalf("unexpected weekdays: %v", req.Weekdays)
	}
	if req.Start != 540 || req.End != 1020 || req.Duration != 30 {
		t.Fatalf("unexpected times: %+v", req)
	}

	if _, err := ParseGenerateRequest([]string{"humpday"}, "09:00", "17:00", 30); err == nil {
		t.Fatalf("expected an error for an unknown weekday")
	}
	if _, err := ParseGenerateRequest([]string{"mon"}, "9am", "17:00", 30); err == nil {
		t.Fatalf("expected an error for a malformed clock value")
	}
}

func TestExpandTemplate_DateFormat(t *testing.T) {
	slots, err := ExpandTemplate("doc-1", []time.Weekday{time.Wednesday}, 540, 600, 60, 7, mondayAnchor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if _, err := time.Parse(models.DateLayout, slots[0].Date); err != nil {
		t.Fatalf("slot date %q is not in calendar form: %v", slots[0].Date, err)
	}
}
