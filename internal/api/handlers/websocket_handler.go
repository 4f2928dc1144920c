package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	ws "github.com/dcastano/jobtrackr-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections to the live event stream.
type WebSocketHandler struct {
	hub       *ws.Hub
	clientURL string
}

// NewWebSocketHandler creates a new WebSocketHandler. Upgrades are only
// accepted from the configured client origin.
func NewWebSocketHandler(hub *ws.Hub, clientURL string) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, clientURL: clientURL}
}

// Serve handles the WebSocket connection request. The route sits behind the
// JWT middleware, so the caller's identity comes from verified claims.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == h.clientURL
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		client.ReadPump()
		h.hub.Unregister <- client
	}()
}
