// File: handlers/cycle.go
package handlers

import (
	"net/http"
	"strconv"

	"femicare/middleware"
	"femicare/models"
	"femicare/services/cycle"
	"femicare/services/insights"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CycleHandler serves cycle logging, history, prefill and insights.
type CycleHandler struct {
	CycleService    cycle.Service
	InsightsService *insights.Service
}

// LogCycleHandler handles POST /cycles.
func (h *CycleHandler) LogCycleHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := middleware.CallerID(c)

	var input models.CycleLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	entry, err := h.CycleService.LogCycle(c.Request.Context(), userID, input)
	if err != nil {
		logger.Warn("cycle log rejected", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// HistoryHandler handles GET /cycles.
func (h *CycleHandler) HistoryHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.CycleService.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cycle history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycles": logs})
}

// PrefillHandler handles GET /cycles/prefill.
func (h *CycleHandler) PrefillHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	prefill, err := h.CycleService.Prefill(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load prefill data"})
		return
	}
	c.JSON(http.StatusOK, prefill)
}

// InsightHandler handles GET /cycles/insight.
func (h *CycleHandler) InsightHandler(c *gin.Context) {
	if h.InsightsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insights are not enabled"})
		return
	}
	userID := middleware.CallerID(c)

	text, err := h.InsightsService.CycleInsight(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": text})
}
