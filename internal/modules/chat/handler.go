package chat

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	svc *Service
	hub *Hub
	log zerolog.Logger
}

func NewHandler(svc *Service, hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	chat := protected.Group("/chat")
	{
		chat.GET("/conversations", h.ListConversations)
		chat.GET("/conversations/:id/messages", h.GetMessages)
		chat.POST("/conversations/:id/messages", h.SendMessage)
		chat.POST("/conversations/:id/read", h.MarkRead)
		chat.GET("/unread-count", h.UnreadCount)
		chat.GET("/ws", h.ServeWS)
	}
	protected.GET("/bookings/:id/conversation", h.ConversationForBooking)
}

// ConversationForBooking answers with data null when the booking has no
// conversation yet; that is an expected state, not an error.
func (h *Handler) ConversationForBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid booking id")
		return
	}

	userID, _ := middleware.UserID(c)
	conv, err := h.svc.ConversationForBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	convs, err := h.svc.ListConversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list conversations")
		return
	}
	response.Success(c, http.StatusOK, convs)
}

func (h *Handler) GetMessages(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	msgs, err := h.svc.Messages(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	userID, _ := middleware.UserID(c)
	msg, err := h.svc.SendMessage(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	n, err := h.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to count messages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": n})
}

// ServeWS upgrades the connection and pumps commands until the client
// leaves. Registration and every subscription are released on exit.
func (h *Handler) ServeWS(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Int64("user_id", userID).Msg("websocket upgrade failed")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	done := make(chan struct{})
	go h.pingLoop(conn, done)
	defer close(done)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd WSCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Int64("user_id", userID).Msg("websocket closed")
			}
			return
		}

		switch cmd.Action {
		case "subscribe":
			if err := h.svc.Subscribe(c.Request.Context(), cmd.ConversationID, userID); err != nil {
				_ = conn.WriteJSON(gin.H{"error": "subscribe failed"})
			}
		case "unsubscribe":
			h.svc.Unsubscribe(userID, cmd.ConversationID)
		case "send":
			if _, err := h.svc.SendMessage(c.Request.Context(), cmd.ConversationID, userID, cmd.Content); err != nil {
				_ = conn.WriteJSON(gin.H{"error": "send failed"})
			}
		}
	}
}

func (h *Handler) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid message")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "conversation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "not a conversation participant")
	case errors.Is(err, ErrChatDisabled):
		response.Error(c, http.StatusConflict, "CHAT_DISABLED", "messaging is closed for this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "chat operation failed")
	}
}
