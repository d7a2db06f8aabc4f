package websocket

import (
	"net/http"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Subscriber identifies who is opening a stream
type Subscriber struct {
	UserID   int64
	SchoolID int64
}

// SubscriberFunc extracts the subscriber from an authenticated request
type SubscriberFunc func(c *gin.Context) (Subscriber, bool)

// Handler for WebSocket connections
type Handler struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	subscriber SubscriberFunc
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, upgrader websocket.Upgrader, subscriber SubscriberFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		upgrader:   upgrader,
		subscriber: subscriber,
		logger:     logger,
	}
}

// HandleConnection godoc
// @Summary Stream school events
// @Description Upgrades to a WebSocket that streams registration, voucher and import events of the caller's school. Browsers may pass the JWT as the `token` query parameter.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param token query string false "JWT access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /events/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSchoolRequired, "A school is required to subscribe to events")))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("schoolID", sub.SchoolID).
			Int64("userID", sub.UserID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		userID:   sub.UserID,
		schoolID: sub.SchoolID,
		logger:   h.logger,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
