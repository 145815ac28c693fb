package handler

import (
	"strings"

	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/pkg/serverutils"
	internalWS "ai-journaling-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// EventStreamHandler streams the caller's domain events (new summaries,
// profile updates, chat turns) over a websocket.
type EventStreamHandler struct {
	hub      *internalWS.Hub
	verifier serverutils.TokenVerifier
	logger   logger.ILogger
}

func NewEventStreamHandler(hub *internalWS.Hub, verifier serverutils.TokenVerifier, log logger.ILogger) *EventStreamHandler {
	return &EventStreamHandler{
		hub:      hub,
		verifier: verifier,
		logger:   log,
	}
}

func (h *EventStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/events/ws", h.Authorize, websocket.New(h.serve))
}

// Authorize resolves the token before the upgrade. Browsers cannot set
// headers on a websocket handshake, so the token query parameter is accepted
// as well as the Authorization header.
func (h *EventStreamHandler) Authorize(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	}
	if token == "" {
		return &apperror.AuthError{Message: "Missing token (query 'token' or Authorization header)."}
	}

	user, err := h.verifier.VerifyToken(c.UserContext(), token)
	if err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(serverutils.LocalUserID, user.Id.String())
	return c.Next()
}

func (h *EventStreamHandler) serve(conn *websocket.Conn) {
	userID, err := uuid.Parse(conn.Locals(serverutils.LocalUserID).(string))
	if err != nil {
		_ = conn.Close()
		return
	}

	h.logger.Info("EVENT_STREAM", "Starting websocket session", map[string]interface{}{"user_id": userID.String()})
	internalWS.ServeWs(h.hub, conn, userID)
	h.logger.Info("EVENT_STREAM", "Websocket session ended", map[string]interface{}{"user_id": userID.String()})
}
