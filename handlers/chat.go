// File: handlers/chat.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	userRepo "femicare/database/repository/user"
	"femicare/middleware"
	"femicare/models"
	"femicare/services/chat"
	"femicare/utils"

	"github.com/gin-gonic/gin"
	gorillawebsocket "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// ChatHandler serves the consultation room websocket and its history.
type ChatHandler struct {
	ChatService *chat.Service
	Users       userRepo.UserRepository
}

// ConnectHandler handles GET /appointments/:id/chat. It gates access through
// the chat service, upgrades the connection and starts the pumps.
func (h *ChatHandler) ConnectHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := middleware.CallerID(c)
	apptID := c.Param("id")

	appt, err := h.ChatService.Authorize(c.Request.Context(), userID, apptID)
	if err != nil {
		switch err {
		case chat.ErrNotParticipant:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case chat.ErrRoomClosed:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open the room"})
		}
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open the room"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := h.ChatService.Join(appt, u, ws)
	go h.writePump(client, ws)
	go h.readPump(client, appt, ws)
}

func (h *ChatHandler) readPump(client *chat.Client, appt *models.Appointment, ws *gorillawebsocket.Conn) {
	defer func() {
		h.ChatService.Leave(client)
		ws.Close()
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}
		var in models.ChatInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			continue // Ignore malformed messages.
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := h.ChatService.HandleInbound(ctx, client, appt, in); err != nil {
			utils.GetLogger().Warn("failed to relay chat message",
				zap.String("room", client.Room), zap.Error(err))
		}
		cancel()
	}
}

func (h *ChatHandler) writePump(client *chat.Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()
	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}

// HistoryHandler handles GET /appointments/:id/chat/history.
func (h *ChatHandler) HistoryHandler(c *gin.Context) {
	userID := middleware.CallerID(c)
	apptID := c.Param("id")
	limit := 200
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil {
			limit = n
		}
	}

	history, err := h.ChatService.History(c.Request.Context(), userID, apptID, limit)
	if err != nil {
		if err == chat.ErrNotParticipant {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}
