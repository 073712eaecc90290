package websocket

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/paylinkhq/paylink/internal/http/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub    *Hub
	logger *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandlePayments handles GET /ws/payments. The route sits behind the JWT
// middleware, so claims are already on the context.
func (h *Handler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket",
			"error", err,
		)
		return
	}

	client := NewClient(conn, h.hub, ChannelPayments, claims.UserID, h.logger)

	h.hub.register <- client

	client.SendWelcome()

	h.logger.Info("payment feed client connected",
		"client_id", client.id,
		"user_id", claims.UserID,
	)

	go client.WritePump()
	go client.ReadPump()
}
