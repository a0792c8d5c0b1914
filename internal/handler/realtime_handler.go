package handler

import (
	"context"

	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/service"
	internalWS "campus-connect-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type RealtimeHandler struct {
	authService service.IAuthService
	chatService service.IChatService
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewRealtimeHandler(
	authService service.IAuthService,
	chatService service.IChatService,
	hub *internalWS.Hub,
	log logger.ILogger,
) *RealtimeHandler {
	return &RealtimeHandler{
		authService: authService,
		chatService: chatService,
		hub:         hub,
		logger:      log,
	}
}

// ChatSocket serves /ws/chat/:id. The upgrade happens first; the token and
// participant check run inside the socket so a rejected client gets a
// proper close frame (policy violation) instead of a failed handshake.
func (h *RealtimeHandler) ChatSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		chatId, err := uuid.Parse(conn.Params("id"))
		if err != nil {
			closePolicyViolation(conn, "invalid conversation id")
			return
		}

		user, ok := h.authenticate(conn)
		if !ok {
			return
		}

		if _, err := h.chatService.Authorize(context.Background(), user.Id, chatId, entity.CapConversationRead); err != nil {
			h.logger.Warn("Realtime", "Chat socket rejected", map[string]interface{}{
				"chat_id": chatId,
				"user_id": user.Id,
				"error":   err.Error(),
			})
			closePolicyViolation(conn, "not allowed")
			return
		}

		h.logger.Info("Realtime", "Chat socket opened", map[string]interface{}{"chat_id": chatId, "user_id": user.Id})
		internalWS.Serve(h.hub, conn, internalWS.ConversationTopic(chatId))
		h.logger.Info("Realtime", "Chat socket closed", map[string]interface{}{"chat_id": chatId, "user_id": user.Id})
	})(c)
}

// NotificationSocket serves /ws/notifications. Subscribes the caller to
// their personal topic.
func (h *RealtimeHandler) NotificationSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		user, ok := h.authenticate(conn)
		if !ok {
			return
		}

		h.logger.Info("Realtime", "Notification socket opened", map[string]interface{}{"user_id": user.Id})
		internalWS.Serve(h.hub, conn, internalWS.UserTopic(user.Id))
		h.logger.Info("Realtime", "Notification socket closed", map[string]interface{}{"user_id": user.Id})
	})(c)
}

func (h *RealtimeHandler) authenticate(conn *websocket.Conn) (*entity.User, bool) {
	token := conn.Query("token")
	if token == "" {
		closePolicyViolation(conn, "missing token")
		return nil, false
	}

	user, err := h.authService.Authenticate(context.Background(), token)
	if err != nil {
		h.logger.Warn("Realtime", "Socket auth failed", map[string]interface{}{"error": err.Error()})
		closePolicyViolation(conn, "authentication failed")
		return nil, false
	}
	return user, true
}

func closePolicyViolation(conn *websocket.Conn, reason string) {
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason))
	conn.Close()
}

// RegisterRoutes registers the websocket endpoints.
func (h *RealtimeHandler) RegisterRoutes(router fiber.Router) {
	ws := router.Group("/ws")
	ws.Get("/chat/:id", h.ChatSocket)
	ws.Get("/notifications", h.NotificationSocket)
}
