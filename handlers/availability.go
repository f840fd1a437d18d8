// File: handlers/availability.go
package handlers

import (
	"net/http"

	"femicare/middleware"
	"femicare/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves slot management for doctors and slot discovery
// for patients.
type AvailabilityHandler struct {
	Service availability.Service
}

// GenerateSlotsHandler handles POST /availability/generate. The doctor's
// weekly template is expanded into concrete slots across the horizon.
func (h *AvailabilityHandler) GenerateSlotsHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := middleware.CallerID(c)

	var req struct {
		Weekdays []string `json:"weekdays" binding:"required"`
		Start    string   `json:"start" binding:"required"`    // "HH:MM"
		End      string   `json:"end" binding:"required"`      // "HH:MM"
		Duration int      `json:"duration" binding:"required"` // minutes
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	parsed, err := availability.ParseGenerateRequest(req.Weekdays, req.Start, req.End, req.Duration)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.Generate(c.Request.Context(), doctorID, parsed)
	if err != nil {
		if _, ok := err.(*availability.ValidationError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("slot generation failed", zap.String("doctorId", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate slots"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// MySlotsHandler handles GET /availability/mine.
func (h *AvailabilityHandler) MySlotsHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	slots, err := h.Service.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load slots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// DoctorSlotsHandler handles GET /doctors/:id/slots: the patient-facing list
// of bookable slots for one doctor.
func (h *AvailabilityHandler) DoctorSlotsHandler(c *gin.Context) {
	doctorID := c.Param("id")
	slots, err := h.Service.ListBookable(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// SetSlotActiveHandler handles PUT /availability/:id/active.
func (h *AvailabilityHandler) SetSlotActiveHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	slotID := c.Param("id")
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.Service.SetActive(c.Request.Context(), doctorID, slotID, *req.Active); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot updated"})
}

// DeleteSlotHandler handles DELETE /availability/:id.
func (h *AvailabilityHandler) DeleteSlotHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	slotID := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), doctorID, slotID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}
