// File: handlers/admin.go
package handlers

import (
	"net/http"

	appointmentRepo "femicare/database/repository/appointment"
	userRepo "femicare/database/repository/user"
	"femicare/models"
	"femicare/services/doctor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the doctor verification queue and platform overview.
type AdminHandler struct {
	DoctorService doctor.Service
	Users         userRepo.UserRepository
	Appointments  appointmentRepo.AppointmentRepository
}

// PendingDoctorsHandler handles GET /admin/doctors/pending.
func (h *AdminHandler) PendingDoctorsHandler(c *gin.Context) {
	pending, err := h.DoctorService.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load verification queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// VerifyDoctorHandler handles POST /admin/doctors/:id/verify.
func (h *AdminHandler) VerifyDoctorHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.Param("id")
	if err := h.DoctorService.Verify(c.Request.Context(), doctorID); err != nil {
		logger.Warn("doctor verification failed", zap.String("doctorId", doctorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor verified"})
}

// RejectDoctorHandler handles POST /admin/doctors/:id/reject.
func (h *AdminHandler) RejectDoctorHandler(c *gin.Context) {
	doctorID := c.Param("id")
	if err := h.DoctorService.Reject(c.Request.Context(), doctorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor rejected"})
}

// ListUsersHandler handles GET /admin/users?role=patient|doctor|admin.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	role := c.DefaultQuery("role", models.RolePatient)
	switch role {
	case models.RolePatient, models.RoleDoctor, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	users, err := h.Users.ListByRole(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// StatsHandler handles GET /admin/stats.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	stats := gin.H{}

	for key, role := range map[string]string{
		"patients": models.RolePatient,
		"doctors":  models.RoleDoctor,
	} {
		n, err := h.Users.CountByRole(ctx, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		stats[key] = n
	}

	appointments := gin.H{}
	for _, status := range []string{
		models.StatusPending, models.StatusApproved, models.StatusRejected,
		models.StatusCancelled, models.StatusExpired, models.StatusCompleted,
	} {
		n, err := h.Appointments.CountByStatus(ctx, status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		appointments[status] = n
	}
	stats["appointments"] = appointments

	c.JSON(http.StatusOK, stats)
}
