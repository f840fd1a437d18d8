// File: handlers/errors.go
package handlers

import (
	"net/http"

	doctorRepo "femicare/database/repository/doctor"
	slotRepo "femicare/database/repository/slot"
	userRepo "femicare/database/repository/user"
	"femicare/services/availability"
	"femicare/services/booking"
	"femicare/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service errors into HTTP responses without
// leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *booking.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message})
	case *booking.ConflictError:
		c.JSON(http.StatusConflict, gin.H{"error": e.Message, "code": e.Code})
	case *booking.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Message})
	case *availability.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	default:
		switch err {
		case slotRepo.ErrSlotNotFound, doctorRepo.ErrProfileNotFound, userRepo.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case utils.ErrCodeMismatch:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
