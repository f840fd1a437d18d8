// File: services/chat/service.go
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	appointmentRepo "femicare/database/repository/appointment"
	"femicare/models"
	"femicare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Participants may connect a little before the slot opens and linger a little
// after it closes.
const (
	JoinEarly   = 15 * time.Minute
	LingerAfter = 30 * time.Minute
)

var (
	// ErrRoomClosed is returned outside the appointment's chat window.
	ErrRoomClosed = errors.New("this consultation room is not open")
	// ErrNotParticipant is returned when the caller does not belong to the
	// appointment.
	ErrNotParticipant = errors.New("appointment not found")
)

// AppointmentGate resolves the appointment a room belongs to.
type AppointmentGate interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

// ChatStore persists room messages.
type ChatStore interface {
	Save(ctx context.Context, msg *models.ChatMessage) error
	History(ctx context.Context, room string, limit int) ([]models.ChatMessage, error)
}

// Service gates room access and relays messages through the hub.
type Service struct {
	Hub          *Hub
	Messages     ChatStore
	Appointments AppointmentGate
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Authorize admits a user into an appointment room. The caller must be the
// appointment's patient or doctor and the current time must fall inside the
// chat window around the slot. Completed status is admitted too: the
// background sweep may flip approved to completed the moment the slot ends,
// while the room stays open through the linger window.
func (s *Service) Authorize(ctx context.Context, userID, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		if err == appointmentRepo.ErrAppointmentNotFound {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	if appt.PatientID != userID && appt.DoctorID != userID {
		return nil, ErrNotParticipant
	}
	if appt.Status != models.StatusApproved && appt.Status != models.StatusCompleted {
		return nil, ErrRoomClosed
	}

	now := s.now()
	opens := appt.StartAt(now.Location()).Add(-JoinEarly)
	closes := appt.EndAt(now.Location()).Add(LingerAfter)
	if now.Before(opens) || now.After(closes) {
		return nil, ErrRoomClosed
	}
	return appt, nil
}

// Join registers an authorized connection with the hub and returns the client
// handle the transport pumps messages through.
func (s *Service) Join(appt *models.Appointment, user *models.User, conn Conn) *Client {
	client := &Client{
		UserID: user.ID,
		Name:   user.Username,
		Room:   appt.ID,
		Send:   make(chan []byte, 256),
		conn:   conn,
	}
	s.Hub.Register(client)
	utils.GetLogger().Info("chat client joined",
		zap.String("room", appt.ID), zap.String("userId", user.ID))
	return client
}

// Leave disconnects a client from its room.
func (s *Service) Leave(client *Client) {
	s.Hub.Unregister(client)
}

// HandleInbound persists a message from a connected client and fans it out to
// the room. Doctor notes keep their flag; patients cannot author notes.
func (s *Service) HandleInbound(ctx context.Context, client *Client, appt *models.Appointment, in models.ChatInbound) error {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil
	}
	isNote := in.IsNote && client.UserID == appt.DoctorID

	msg := &models.ChatMessage{
		ID:         uuid.New().String(),
		Room:       client.Room,
		SenderID:   client.UserID,
		SenderName: client.Name,
		Message:    text,
		IsNote:     isNote,
		SentAt:     s.now(),
	}
	if err := s.Messages.Save(ctx, msg); err != nil {
		return err
	}

	s.Hub.Broadcast(client.Room, models.ChatOutbound{
		Message: msg.Message,
		Sender:  msg.SenderName,
		IsNote:  msg.IsNote,
	})
	return nil
}

// History returns the room's messages, oldest first. Only participants may
// read it, but unlike live access it is not window-gated so doctors can
// review notes after the fact.
func (s *Service) History(ctx context.Context, userID, apptID string, limit int) ([]models.ChatMessage, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		if err == appointmentRepo.ErrAppointmentNotFound {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	if appt.PatientID != userID && appt.DoctorID != userID {
		return nil, ErrNotParticipant
	}
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.Messages.History(ctx, apptID, limit)
}
