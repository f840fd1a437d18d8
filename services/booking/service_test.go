package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	appointmentRepo "femicare/database/repository/appointment"
	slotRepo "femicare/database/repository/slot"
	"femicare/models"
)

// fakeStore backs both the slot and appointment sides of the engine with one
// mutex, mirroring the atomicity the Mongo transaction provides.
type fakeStore struct {
	mu           sync.Mutex
	slots        map[string]*models.AvailabilitySlot
	appointments map[string]*models.Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:        make(map[string]*models.AvailabilitySlot),
		appointments: make(map[string]*models.Appointment),
	}
}

func (f *fakeStore) addSlot(s models.AvailabilitySlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := s
	f.slots[s.ID] = &cp
}

func (f *fakeStore) GetByID(ctx context.Context, slotID string) (*models.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Release(ctx context.Context, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[slotID]; ok {
		s.Active = true
	}
	return nil
}

func (f *fakeStore) SetActive(ctx context.Context, doctorID, slotID string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[slotID]; ok && s.DoctorID == doctorID {
		s.Active = active
	}
	return nil
}

func (f *fakeStore) BookTransactionally(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[appt.SlotID]
	if !ok || !s.Active {
		return appointmentRepo.ErrSlotTaken
	}
	s.Active = false
	cp := *appt
	f.appointments[appt.ID] = &cp
	return nil
}

func (f *fakeStore) GetAppointment(id string) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appointments[id]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (f *fakeStore) GetByIDAppt(ctx context.Context, id string) (*models.Appointment, error) {
	a := f.GetAppointment(id)
	if a == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeStore) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) CountActiveOnDate(ctx context.Context, patientID, date, doctorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appointments {
		if a.PatientID != patientID || a.Date != date {
			continue
		}
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		if a.Status == models.StatusPending || a.Status == models.StatusApproved {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id, from, to string, set map[string]interface{}) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	if a.Status != from {
		return nil, appointmentRepo.ErrInvalidTransition
	}
	a.Status = to
	if reason, ok := set["rejectionReason"].(string); ok {
		a.RejectionReason = reason
	}
	cp := *a
	return &cp, nil
}

// apptStoreAdapter renames GetByIDAppt so fakeStore can satisfy both
// interfaces despite the method-name collision on GetByID.
type apptStoreAdapter struct{ *fakeStore }

func (a apptStoreAdapter) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return a.GetByIDAppt(ctx, id)
}

type fakeDoctors struct {
	profiles map[string]*models.DoctorProfile
}

func (f *fakeDoctors) GetProfile(ctx context.Context, id string) (*models.DoctorProfile, error) {
	return f.profiles[id], nil
}

func verifiedDoctor(id string) *models.DoctorProfile {
	return &models.DoctorProfile{
		ID:             "prof-" + id,
		UserID:         id,
		Specialization: "Gynecology",
		LicenseNumber:  "L-123",
		CertificateURL: "https://example.com/cert.pdf",
		Verified:       true,
	}
}

type fakeUsers struct{}

func (fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Username: id, Email: id + "@example.com"}, nil
}

func testService(store *fakeStore, doctors *fakeDoctors, now time.Time) *DefaultBookingService {
	return &DefaultBookingService{
		Slots:         store,
		Appointments:  apptStoreAdapter{store},
		Doctors:       doctors,
		Users:         fakeUsers{},
		ConflictScope: ScopeAnyDoctor,
		PendingTTL:    6 * time.Hour,
		Now:           func() time.Time { return now },
	}
}

var bookNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.Local)

func futureSlot(id, doctorID string) models.AvailabilitySlot {
	return models.AvailabilitySlot{
		ID:       id,
		DoctorID: doctorID,
		Date:     bookNow.AddDate(0, 0, 1).Format(models.DateLayout),
		Start:    540,
		End:      570,
		Active:   true,
	}
}

func TestBook_CreatesPendingAppointment(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)

	appt, err := svc.Book(context.Background(), "pat-1", "slot-1", "cramps consultation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("new appointment should be pending, got %q", appt.Status)
	}
	if appt.Start != 540 || appt.End != 570 {
		t.Fatalf("appointment did not copy the slot window: %+v", appt)
	}

	slot, _ := store.GetByID(context.Background(), "slot-1")
	if slot.Active {
		t.Fatalf("booked slot must be inactive")
	}
}

func TestBook_RequiresReason(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)

	if _, err := svc.Book(context.Background(), "pat-1", "slot-1", ""); err == nil {
		t.Fatalf("expected a validation error for a missing reason")
	}
}

func TestBook_InactiveSlotConflicts(t *testing.T) {
	store := newFakeStore()
	s := futureSlot("slot-1", "doc-1")
	s.Active = false
	store.addSlot(s)
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)

	_, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
}

func TestBook_PastStartRejected(t *testing.T) {
	store := newFakeStore()
	s := futureSlot("slot-1", "doc-1")
	s.Date = bookNow.Format(models.DateLayout)
	s.Start = 7 * 60 // an hour before the injected clock
	s.End = 7*60 + 30
	store.addSlot(s)
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)

	_, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected *ConflictError for a started slot, got %v", err)
	}

	// The stale slot is defensively taken off the market.
	slot, _ := store.GetByID(context.Background(), "slot-1")
	if slot.Active {
		t.Fatalf("a started slot must be deactivated when discovered")
	}
}

func TestBook_UnverifiedDoctorConflicts(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	profile := verifiedDoctor("doc-1")
	profile.Verified = false
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": profile}}
	svc := testService(store, doctors, bookNow)

	_, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected *ConflictError for an unverified doctor, got %v", err)
	}
}

func TestBook_SameDayConflict_AnyDoctor(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	store.addSlot(futureSlot("slot-2", "doc-2"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{
		"doc-1": verifiedDoctor("doc-1"),
		"doc-2": verifiedDoctor("doc-2"),
	}}
	svc := testService(store, doctors, bookNow)

	if _, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.Book(context.Background(), "pat-1", "slot-2", "second opinion")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected a same-day conflict across doctors, got %v", err)
	}
}

func TestBook_SameDayAllowed_PerDoctorScope(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	store.addSlot(futureSlot("slot-2", "doc-2"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{
		"doc-1": verifiedDoctor("doc-1"),
		"doc-2": verifiedDoctor("doc-2"),
	}}
	svc := testService(store, doctors, bookNow)
	svc.ConflictScope = ScopePerDoctor

	if _, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Book(context.Background(), "pat-1", "slot-2", "second opinion"); err != nil {
		t.Fatalf("per-doctor scope should allow a different doctor the same day: %v", err)
	}
}

func TestBook_ConcurrentClaims_OneWinner(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patient := "pat-" + string(rune('a'+i))
			_, errs[i] = svc.Book(context.Background(), patient, "slot-1", "checkup")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		if _, ok := err.(*ConflictError); !ok {
			t.Fatalf("losers must see a conflict, got %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func bookOne(t *testing.T, svc *DefaultBookingService, store *fakeStore) *models.Appointment {
	t.Helper()
	appt, err := svc.Book(context.Background(), "pat-1", "slot-1", "checkup")
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	return appt
}

func TestApprove(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	updated, err := svc.Approve(context.Background(), "doc-1", appt.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %q", updated.Status)
	}

	// The slot stays claimed after approval.
	slot, _ := store.GetByID(context.Background(), "slot-1")
	if slot.Active {
		t.Fatalf("approved appointment must keep its slot claimed")
	}
}

func TestApprove_WrongDoctorHidden(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	_, err := svc.Approve(context.Background(), "doc-2", appt.ID)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("another doctor must not see the appointment, got %v", err)
	}
}

func TestApprove_ExpiredPendingIsPersisted(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	// Move the clock past the pending TTL and try to approve.
	svc.Now = func() time.Time { return bookNow.Add(7 * time.Hour) }
	_, err := svc.Approve(context.Background(), "doc-1", appt.ID)
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected a conflict for an expired request, got %v", err)
	}

	stored := store.GetAppointment(appt.ID)
	if stored.Status != models.StatusExpired {
		t.Fatalf("expired transition must be persisted, got %q", stored.Status)
	}
	slot, _ := store.GetByID(context.Background(), "slot-1")
	if !slot.Active {
		t.Fatalf("expiry must release the slot")
	}
}

func TestReject_ReleasesSlot(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	updated, err := svc.Reject(context.Background(), "doc-1", appt.ID, "schedule conflict")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if updated.Status != models.StatusRejected || updated.RejectionReason != "schedule conflict" {
		t.Fatalf("unexpected rejection state: %+v", updated)
	}

	slot, _ := store.GetByID(context.Background(), "slot-1")
	if !slot.Active {
		t.Fatalf("rejection must put the slot back on the market")
	}
}

func TestReject_RequiresReason(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	if _, err := svc.Reject(context.Background(), "doc-1", appt.ID, ""); err == nil {
		t.Fatalf("expected an error for a missing rejection reason")
	}
}

func TestCancel_ByPatient(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	updated, err := svc.Cancel(context.Background(), "pat-1", appt.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %q", updated.Status)
	}

	slot, _ := store.GetByID(context.Background(), "slot-1")
	if !slot.Active {
		t.Fatalf("cancellation must release the slot")
	}

	// Someone else can now claim it.
	if _, err := svc.Book(context.Background(), "pat-2", "slot-1", "checkup"); err != nil {
		t.Fatalf("released slot should be bookable again: %v", err)
	}
}

func TestCancel_OtherPatientHidden(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	appt := bookOne(t, svc, store)

	_, err := svc.Cancel(context.Background(), "pat-2", appt.ID)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("another patient must not see the appointment, got %v", err)
	}
}

func TestListForPatient_CarriesDisplayStatus(t *testing.T) {
	store := newFakeStore()
	store.addSlot(futureSlot("slot-1", "doc-1"))
	doctors := &fakeDoctors{profiles: map[string]*models.DoctorProfile{"doc-1": verifiedDoctor("doc-1")}}
	svc := testService(store, doctors, bookNow)
	bookOne(t, svc, store)

	views, err := svc.ListForPatient(context.Background(), "pat-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(views))
	}
	if views[0].DisplayStatus != models.StatusPending {
		t.Fatalf("expected pending display status, got %q", views[0].DisplayStatus)
	}
}
