// File: services/booking/service.go
package booking

import (
	"context"
	"time"

	appointmentRepo "femicare/database/repository/appointment"
	doctorRepo "femicare/database/repository/doctor"
	slotRepo "femicare/database/repository/slot"
	"femicare/models"
	"femicare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book claims an active slot for the patient and creates a pending
// appointment. The claim itself is a transactional conditional update, so of
// any number of concurrent callers exactly one wins the slot.
func (s *DefaultBookingService) Book(ctx context.Context, patientID, slotID, reason string) (*models.Appointment, error) {
	logger := utils.GetLogger()
	if reason == "" {
		return nil, NewValidationError("a reason for the visit is required")
	}

	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if err == slotRepo.ErrSlotNotFound {
			return nil, NewNotFoundError("slot")
		}
		return nil, err
	}
	if !slot.Active {
		return nil, NewConflictError("this slot is no longer available")
	}
	if patientID == slot.DoctorID {
		return nil, NewValidationError("you cannot book your own slot")
	}

	now := s.now()
	today := now.Format(models.DateLayout)
	nowMinutes := now.Hour()*60 + now.Minute()
	if slot.Date < today || (slot.Date == today && slot.Start <= nowMinutes) {
		// Stale slot that the cleanup sweep has not reached yet. Take it off
		// the market so nobody else trips over it.
		if err := s.Slots.SetActive(ctx, slot.DoctorID, slot.ID, false); err != nil {
			utils.GetLogger().Warn("failed to deactivate stale slot",
				zap.String("slotId", slot.ID), zap.Error(err))
		}
		return nil, NewConflictError("this slot has already started")
	}

	profile, err := s.Doctors.GetProfile(ctx, slot.DoctorID)
	if err != nil && err != doctorRepo.ErrProfileNotFound {
		return nil, err
	}
	if profile == nil || !profile.Bookable() {
		return nil, NewConflictError("this doctor is not accepting bookings")
	}

	// One live appointment per patient per day. The configured scope decides
	// whether that counts across all doctors or only this one.
	scopeDoctor := ""
	if s.ConflictScope == ScopePerDoctor {
		scopeDoctor = slot.DoctorID
	}
	active, err := s.Appointments.CountActiveOnDate(ctx, patientID, slot.Date, scopeDoctor)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, NewConflictError("you already have an appointment on this date")
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		Start:     slot.Start,
		End:       slot.End,
		Reason:    reason,
		Status:    models.StatusPending,
		CreatedAt: now,
	}
	if err := s.Appointments.BookTransactionally(ctx, appt); err != nil {
		if err == appointmentRepo.ErrSlotTaken {
			return nil, NewConflictError("this slot was just taken, please pick another")
		}
		return nil, err
	}

	logger.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("patientId", patientID),
		zap.String("doctorId", slot.DoctorID),
		zap.String("date", slot.Date))

	s.notifyAsync(func(ctx context.Context) {
		doctor, derr := s.Users.GetByID(ctx, appt.DoctorID)
		patient, perr := s.Users.GetByID(ctx, appt.PatientID)
		if derr != nil || perr != nil {
			return
		}
		s.Notifier.AppointmentBooked(ctx, doctor, patient, appt)
	})
	return appt, nil
}

// Approve moves a pending appointment to approved. A pending request older
// than the TTL is persisted as expired instead, and the slot is freed.
func (s *DefaultBookingService) Approve(ctx context.Context, doctorID, apptID string) (*models.Appointment, error) {
	appt, err := s.ownedByDoctor(ctx, doctorID, apptID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return nil, NewConflictError("only pending appointments can be approved")
	}
	now := s.now()
	if now.Sub(appt.CreatedAt) > s.pendingTTL() {
		s.expirePending(ctx, appt)
		return nil, NewConflictError("this request expired before it was approved")
	}

	updated, err := s.Appointments.UpdateStatus(ctx, apptID, models.StatusPending, models.StatusApproved,
		map[string]interface{}{"respondedAt": now})
	if err != nil {
		if err == appointmentRepo.ErrInvalidTransition {
			return nil, NewConflictError("this appointment was already handled")
		}
		return nil, err
	}

	s.notifyAsync(func(ctx context.Context) {
		patient, perr := s.Users.GetByID(ctx, updated.PatientID)
		if perr != nil {
			return
		}
		s.Notifier.AppointmentApproved(ctx, patient, updated)
	})
	return updated, nil
}

// Reject declines a pending appointment with a mandatory reason and puts the
// slot back on the market.
func (s *DefaultBookingService) Reject(ctx context.Context, doctorID, apptID, reason string) (*models.Appointment, error) {
	if reason == "" {
		return nil, NewValidationError("a rejection reason is required")
	}
	appt, err := s.ownedByDoctor(ctx, doctorID, apptID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return nil, NewConflictError("only pending appointments can be rejected")
	}

	now := s.now()
	updated, err := s.Appointments.UpdateStatus(ctx, apptID, models.StatusPending, models.StatusRejected,
		map[string]interface{}{"respondedAt": now, "rejectionReason": reason})
	if err != nil {
		if err == appointmentRepo.ErrInvalidTransition {
			return nil, NewConflictError("this appointment was already handled")
		}
		return nil, err
	}
	s.releaseSlot(ctx, updated)

	s.notifyAsync(func(ctx context.Context) {
		patient, perr := s.Users.GetByID(ctx, updated.PatientID)
		if perr != nil {
			return
		}
		s.Notifier.AppointmentRejected(ctx, patient, updated, reason)
	})
	return updated, nil
}

// Cancel lets the patient withdraw a pending or approved appointment before
// it starts.
func (s *DefaultBookingService) Cancel(ctx context.Context, patientID, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		if err == appointmentRepo.ErrAppointmentNotFound {
			return nil, NewNotFoundError("appointment")
		}
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, NewNotFoundError("appointment")
	}
	if appt.Status != models.StatusPending && appt.Status != models.StatusApproved {
		return nil, NewConflictError("this appointment can no longer be cancelled")
	}

	now := s.now()
	if !now.Before(appt.StartAt(now.Location())) {
		return nil, NewConflictError("this appointment has already started")
	}

	updated, err := s.Appointments.UpdateStatus(ctx, apptID, appt.Status, models.StatusCancelled,
		map[string]interface{}{"respondedAt": now})
	if err != nil {
		if err == appointmentRepo.ErrInvalidTransition {
			return nil, NewConflictError("this appointment was already handled")
		}
		return nil, err
	}
	s.releaseSlot(ctx, updated)

	s.notifyAsync(func(ctx context.Context) {
		doctor, derr := s.Users.GetByID(ctx, updated.DoctorID)
		if derr != nil {
			return
		}
		s.Notifier.AppointmentCancelled(ctx, doctor, updated)
	})
	return updated, nil
}

// ListForPatient returns the patient's appointments newest first, each
// decorated with its read-time display status.
func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.toViews(appts), nil
}

// ListForDoctor returns appointments booked against the doctor's slots.
func (s *DefaultBookingService) ListForDoctor(ctx context.Context, doctorID string) ([]models.AppointmentView, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.toViews(appts), nil
}

// Get returns one appointment if the caller is a participant.
func (s *DefaultBookingService) Get(ctx context.Context, callerID, apptID string) (*models.AppointmentView, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		if err == appointmentRepo.ErrAppointmentNotFound {
			return nil, NewNotFoundError("appointment")
		}
		return nil, err
	}
	if appt.PatientID != callerID && appt.DoctorID != callerID {
		return nil, NewNotFoundError("appointment")
	}
	return &models.AppointmentView{
		Appointment:   *appt,
		DisplayStatus: DisplayStatus(appt, s.now(), s.pendingTTL()),
	}, nil
}

func (s *DefaultBookingService) toViews(appts []models.Appointment) []models.AppointmentView {
	now := s.now()
	ttl := s.pendingTTL()
	views := make([]models.AppointmentView, 0, len(appts))
	for i := range appts {
		views = append(views, models.AppointmentView{
			Appointment:   appts[i],
			DisplayStatus: DisplayStatus(&appts[i], now, ttl),
		})
	}
	return views
}

// ownedByDoctor loads the appointment and hides it from anyone but its doctor.
func (s *DefaultBookingService) ownedByDoctor(ctx context.Context, doctorID, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		if err == appointmentRepo.ErrAppointmentNotFound {
			return nil, NewNotFoundError("appointment")
		}
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, NewNotFoundError("appointment")
	}
	return appt, nil
}

// expirePending persists the timed-out state and frees the slot. Best effort:
// the read path already reports such appointments as expired.
func (s *DefaultBookingService) expirePending(ctx context.Context, appt *models.Appointment) {
	logger := utils.GetLogger()
	if _, err := s.Appointments.UpdateStatus(ctx, appt.ID, models.StatusPending, models.StatusExpired, nil); err != nil {
		if err != appointmentRepo.ErrInvalidTransition {
			logger.Warn("failed to persist expired appointment",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
		return
	}
	s.releaseSlot(ctx, appt)
}

func (s *DefaultBookingService) releaseSlot(ctx context.Context, appt *models.Appointment) {
	if err := s.Slots.Release(ctx, appt.SlotID); err != nil {
		utils.GetLogger().Warn("failed to release slot",
			zap.String("slotId", appt.SlotID),
			zap.String("appointmentId", appt.ID),
			zap.Error(err))
	}
}

// notifyAsync runs a notification callback in the background with its own
// deadline. Delivery is never allowed to fail a booking request.
func (s *DefaultBookingService) notifyAsync(fn func(ctx context.Context)) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		fn(ctx)
	}()
}
