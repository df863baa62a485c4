package handler

import (
	"net/http"

	"github.com/pizza-nz/ordering-service/internal/api"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
	"github.com/pizza-nz/ordering-service/internal/websockets"
)

// WebSocketHandler upgrades staff connections onto the live order board
type WebSocketHandler struct {
	hub         *websockets.Hub
	authService *service.AuthService
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *websockets.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on websocket dials, so the token rides in
	// the query string.
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		api.BadRequest(w, "token is required")
		return
	}

	claims, err := h.authService.ValidateToken(tokenString)
	if err != nil || claims.ActorType != service.ActorTypeStaff {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	actor, err := claims.Actor()
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	role := models.UserRole(claims.Role)

	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(h.hub, conn, actor.BusinessID().String(), role)
}
