// File: handlers/appointment.go
package handlers

import (
	"net/http"

	"femicare/middleware"
	"femicare/models"
	"femicare/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the booking lifecycle.
type AppointmentHandler struct {
	BookingService booking.Service
}

// BookHandler handles POST /appointments. Patients claim a slot.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := middleware.CallerID(c)

	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	appt, err := h.BookingService.Book(c.Request.Context(), patientID, req.SlotID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Info("appointment created",
		zap.String("appointmentId", appt.ID), zap.String("patientId", patientID))
	c.JSON(http.StatusCreated, appt)
}

// ApproveHandler handles POST /appointments/:id/approve. Doctors only.
func (h *AppointmentHandler) ApproveHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	appt, err := h.BookingService.Approve(c.Request.Context(), doctorID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// RejectHandler handles POST /appointments/:id/reject. Doctors only, reason
// required.
func (h *AppointmentHandler) RejectHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	var req models.RejectAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a rejection reason is required"})
		return
	}

	appt, err := h.BookingService.Reject(c.Request.Context(), doctorID, c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelHandler handles POST /appointments/:id/cancel. Patients only.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	patientID := middleware.CallerID(c)
	appt, err := h.BookingService.Cancel(c.Request.Context(), patientID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMineHandler handles GET /appointments. The caller's role decides which
// side of the booking they see.
func (h *AppointmentHandler) ListMineHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	role := middleware.CallerRole(c)

	var (
		views []models.AppointmentView
		err   error
	)
	if role == models.RoleDoctor {
		views, err = h.BookingService.ListForDoctor(c.Request.Context(), userID)
	} else {
		views, err = h.BookingService.ListForPatient(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": views})
}

// GetHandler handles GET /appointments/:id.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	view, err := h.BookingService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
