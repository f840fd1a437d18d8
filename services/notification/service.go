// File: services/notification/service.go
package notification

import (
	"context"
	"fmt"

	"femicare/models"
	"femicare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

func (s *DefaultNotificationService) AppointmentBooked(ctx context.Context, doctor, patient *models.User, appt *models.Appointment) {
	subject := "New appointment request"
	body := fmt.Sprintf(
		"Hello %s,\n\n%s has requested an appointment on %s at %s.\nReason: %s\n\nPlease approve or reject it from your dashboard.",
		doctor.Username, patient.Username, appt.Date, utils.FormatMinutes(appt.Start), appt.Reason,
	)
	s.deliver(ctx, doctor, subject, body, map[string]string{
		"type":          "appointment_booked",
		"appointmentId": appt.ID,
	})
}

func (s *DefaultNotificationService) AppointmentApproved(ctx context.Context, patient *models.User, appt *models.Appointment) {
	subject := "Your appointment was approved"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been approved. You can chat with your doctor around the appointment time.",
		patient.Username, appt.Date, utils.FormatMinutes(appt.Start),
	)
	s.deliver(ctx, patient, subject, body, map[string]string{
		"type":          "appointment_approved",
		"appointmentId": appt.ID,
	})
}

func (s *DefaultNotificationService) AppointmentRejected(ctx context.Context, patient *models.User, appt *models.Appointment, reason string) {
	subject := "Your appointment was declined"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment request for %s at %s was declined.\nReason: %s\n\nThe slot has been made available again, so you may pick another time.",
		patient.Username, appt.Date, utils.FormatMinutes(appt.Start), reason,
	)
	s.deliver(ctx, patient, subject, body, map[string]string{
		"type":          "appointment_rejected",
		"appointmentId": appt.ID,
	})
}

func (s *DefaultNotificationService) AppointmentCancelled(ctx context.Context, doctor *models.User, appt *models.Appointment) {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nThe appointment on %s at %s was cancelled by the patient. The slot is open again.",
		doctor.Username, appt.Date, utils.FormatMinutes(appt.Start),
	)
	s.deliver(ctx, doctor, subject, body, map[string]string{
		"type":          "appointment_cancelled",
		"appointmentId": appt.ID,
	})
}

func (s *DefaultNotificationService) CycleReminder(ctx context.Context, patient *models.User, predictedDate string) {
	subject := "Your next period is coming up"
	body := fmt.Sprintf(
		"Hello %s,\n\nBased on your logged cycles, your next period is predicted to start around %s. Remember to log it when it arrives.",
		patient.Username, predictedDate,
	)
	s.deliver(ctx, patient, subject, body, map[string]string{
		"type": "cycle_reminder",
		"date": predictedDate,
	})
}

func (s *DefaultNotificationService) VerificationCode(ctx context.Context, email, code string) {
	subject := "Your FemiCare verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code)
	if err := s.Email.Send(ctx, email, subject, body); err != nil {
		utils.GetLogger().Warn("verification email failed", zap.String("email", email), zap.Error(err))
	}
}

// deliver sends the email and, when a token is present, a push. Errors end
// up in the log only.
func (s *DefaultNotificationService) deliver(ctx context.Context, to *models.User, subject, body string, data map[string]string) {
	logger := utils.GetLogger()
	if to == nil {
		return
	}
	if to.Email != "" {
		if err := s.Email.Send(ctx, to.Email, subject, body); err != nil {
			logger.Warn("notification email failed",
				zap.String("userId", to.ID), zap.String("subject", subject), zap.Error(err))
		}
	}
	s.push(ctx, to, subject, body, data)
}

func (s *DefaultNotificationService) push(ctx context.Context, to *models.User, title, body string, data map[string]string) {
	if to.FCMToken == "" || utils.FCMClient == nil {
		return
	}
	msg := &messaging.Message{
		Token: to.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push notification failed",
			zap.String("userId", to.ID), zap.Error(err))
	}
}
