// File: services/notification/interface.go
package notification

import (
	"context"

	"femicare/models"
)

// NotificationService delivers appointment and cycle events to users over
// email and, when a device token is registered, FCM push. Delivery failures
// are logged and swallowed; callers fire and forget.
type NotificationService interface {
	AppointmentBooked(ctx context.Context, doctor, patient *models.User, appt *models.Appointment)
	AppointmentApproved(ctx context.Context, patient *models.User, appt *models.Appointment)
	AppointmentRejected(ctx context.Context, patient *models.User, appt *models.Appointment, reason string)
	AppointmentCancelled(ctx context.Context, doctor *models.User, appt *models.Appointment)
	CycleReminder(ctx context.Context, patient *models.User, predictedDate string)
	VerificationCode(ctx context.Context, email, code string)
}

// EmailSender abstracts the outbound mail transport so tests can capture
// messages instead of dialing a relay.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Email EmailSender
	From  string
}

func NewDefaultNotificationService(email EmailSender) *DefaultNotificationService {
	return &DefaultNotificationService{Email: email}
}
