package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	appointmentRepo "femicare/database/repository/appointment"
	"femicare/models"
)

type fakeGate struct {
	appt *models.Appointment
}

func (f *fakeGate) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *f.appt
	return &cp, nil
}

type fakeMessages struct {
	saved []models.ChatMessage
}

func (f *fakeMessages) Save(ctx context.Context, msg *models.ChatMessage) error {
	f.saved = append(f.saved, *msg)
	return nil
}

func (f *fakeMessages) History(ctx context.Context, room string, limit int) ([]models.ChatMessage, error) {
	out := f.saved
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type nopConn struct{}

func (nopConn) ReadMessage() (int, []byte, error) { return 0, nil, nil }
func (nopConn) WriteMessage(int, []byte) error    { return nil }
func (nopConn) Close() error                      { return nil }

// chatNow sits inside the window of an appointment running 10:00..10:30.
var chatNow = time.Date(2025, 3, 4, 10, 5, 0, 0, time.Local)

func approvedAppt() *models.Appointment {
	return &models.Appointment{
		ID:        "appt-1",
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		SlotID:    "slot-1",
		Date:      chatNow.Format(models.DateLayout),
		Start:     10 * 60,
		End:       10*60 + 30,
		Status:    models.StatusApproved,
	}
}

func newTestChatService(appt *models.Appointment, now time.Time) (*Service, *fakeMessages) {
	msgs := &fakeMessages{}
	svc := &Service{
		Hub:          NewHub(),
		Messages:     msgs,
		Appointments: &fakeGate{appt: appt},
		Now:          func() time.Time { return now },
	}
	return svc, msgs
}

func TestAuthorize_WindowGating(t *testing.T) {
	appt := approvedAppt()
	cases := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"during the slot", chatNow, true},
		{"fifteen minutes early", chatNow.Add(-20 * time.Minute), true},
		{"too early", chatNow.Add(-25 * time.Minute), false},
		{"lingering after the end", chatNow.Add(45 * time.Minute), true},
		{"long after the end", chatNow.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestChatService(appt, tc.now)
			_, err := svc.Authorize(context.Background(), "pat-1", "appt-1")
			if tc.ok && err != nil {
				t.Fatalf("expected access, got %v", err)
			}
			if !tc.ok && err != ErrRoomClosed {
				t.Fatalf("expected ErrRoomClosed, got %v", err)
			}
		})
	}
}

func TestAuthorize_CompletedKeepsLingerWindowOpen(t *testing.T) {
	// The maintenance sweep may mark an appointment completed as soon as its
	// slot ends. That must not close the room early.
	appt := approvedAppt()
	appt.Status = models.StatusCompleted

	svc, _ := newTestChatService(appt, chatNow.Add(40*time.Minute))
	if _, err := svc.Authorize(context.Background(), "pat-1", "appt-1"); err != nil {
		t.Fatalf("completed appointment inside the linger window must admit, got %v", err)
	}

	svc.Now = func() time.Time { return chatNow.Add(2 * time.Hour) }
	if _, err := svc.Authorize(context.Background(), "pat-1", "appt-1"); err != ErrRoomClosed {
		t.Fatalf("completed appointment past the linger window must be closed, got %v", err)
	}
}

func TestAuthorize_RequiresApproval(t *testing.T) {
	appt := approvedAppt()
	appt.Status = models.StatusPending
	svc, _ := newTestChatService(appt, chatNow)

	if _, err := svc.Authorize(context.Background(), "pat-1", "appt-1"); err != ErrRoomClosed {
		t.Fatalf("a pending appointment must not open a room, got %v", err)
	}
}

func TestAuthorize_RejectsOutsider(t *testing.T) {
	svc, _ := newTestChatService(approvedAppt(), chatNow)

	if _, err := svc.Authorize(context.Background(), "stranger", "appt-1"); err != ErrNotParticipant {
		t.Fatalf("a non-participant must be turned away, got %v", err)
	}
}

func TestHandleInbound_BroadcastsToRoom(t *testing.T) {
	appt := approvedAppt()
	svc, msgs := newTestChatService(appt, chatNow)

	patient := svc.Join(appt, &models.User{ID: "pat-1", Username: "amina"}, nopConn{})
	doctor := svc.Join(appt, &models.User{ID: "doc-1", Username: "drk"}, nopConn{})
	defer svc.Leave(patient)
	defer svc.Leave(doctor)

	err := svc.HandleInbound(context.Background(), patient, appt, models.ChatInbound{Message: "hello doctor"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs.saved) != 1 || msgs.saved[0].Message != "hello doctor" {
		t.Fatalf("message was not persisted: %+v", msgs.saved)
	}

	for _, c := range []*Client{patient, doctor} {
		select {
		case data := <-c.Send:
			var out models.ChatOutbound
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if out.Message != "hello doctor" || out.Sender != "amina" {
				t.Fatalf("unexpected broadcast: %+v", out)
			}
		default:
			t.Fatalf("client %s did not receive the broadcast", c.UserID)
		}
	}
}

func TestHandleInbound_SkipsBlankMessages(t *testing.T) {
	appt := approvedAppt()
	svc, msgs := newTestChatService(appt, chatNow)
	client := svc.Join(appt, &models.User{ID: "pat-1", Username: "amina"}, nopConn{})
	defer svc.Leave(client)

	if err := svc.HandleInbound(context.Background(), client, appt, models.ChatInbound{Message: "   "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs.saved) != 0 {
		t.Fatalf("blank messages must not be persisted")
	}
}

func TestHandleInbound_OnlyDoctorAuthorsNotes(t *testing.T) {
	appt := approvedAppt()
	svc, msgs := newTestChatService(appt, chatNow)
	patient := svc.Join(appt, &models.User{ID: "pat-1", Username: "amina"}, nopConn{})
	doctor := svc.Join(appt, &models.User{ID: "doc-1", Username: "drk"}, nopConn{})
	defer svc.Leave(patient)
	defer svc.Leave(doctor)

	svc.HandleInbound(context.Background(), patient, appt, models.ChatInbound{Message: "note?", IsNote: true})
	svc.HandleInbound(context.Background(), doctor, appt, models.ChatInbound{Message: "BP normal", IsNote: true})

	if msgs.saved[0].IsNote {
		t.Errorf("a patient message must never carry the note flag")
	}
	if !msgs.saved[1].IsNote {
		t.Errorf("a doctor note must keep its flag")
	}
}

func TestHistory_ParticipantOnly(t *testing.T) {
	appt := approvedAppt()
	svc, msgs := newTestChatService(appt, chatNow)
	msgs.saved = append(msgs.saved, models.ChatMessage{Room: "appt-1", Message: "earlier"})

	// History is readable even after the room window has closed.
	svc.Now = func() time.Time { return chatNow.Add(3 * time.Hour) }

	got, err := svc.History(context.Background(), "doc-1", "appt-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}

	if _, err := svc.History(context.Background(), "stranger", "appt-1", 10); err != ErrNotParticipant {
		t.Fatalf("a non-participant must not read history, got %v", err)
	}
}

func TestHub_UnregisterClosesAndEmptiesRoom(t *testing.T) {
	hub := NewHub()
	client := &Client{UserID: "u1", Room: "r1", Send: make(chan []byte, 1), conn: nopConn{}}
	hub.Register(client)
	if hub.RoomCount("r1") != 1 {
		t.Fatalf("expected one client in the room")
	}

	hub.Unregister(client)
	if hub.RoomCount("r1") != 0 {
		t.Fatalf("room should be empty after unregister")
	}
	if _, open := <-client.Send; open {
		t.Fatalf("send channel should be closed")
	}

	// A second unregister is a no-op, not a double close.
	hub.Unregister(client)
}
