// File: handlers/user.go
package handlers

import (
	"net/http"

	"femicare/middleware"
	"femicare/models"
	"femicare/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves account endpoints for the authenticated user.
type UserHandler struct {
	UserService user.UserService
}

// MeHandler handles GET /users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := middleware.CallerID(c)

	u, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to load account", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler handles PUT /users/me/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	u, err := h.UserService.UpdateProfile(c.Request.Context(), userID, profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePasswordHandler handles PUT /users/me/password.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed, please sign in again"})
}

// UpdateFCMTokenHandler handles PUT /users/me/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.UserService.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save push token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "push token saved"})
}

// DeleteAccountHandler handles DELETE /users/me.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := middleware.CallerID(c)
	if err := h.UserService.Delete(c.Request.Context(), userID); err != nil {
		logger.Error("account deletion failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
