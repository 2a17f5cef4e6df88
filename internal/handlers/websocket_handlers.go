package handlers

import (
	"net/http"

	"activity-hub/internal/engine/actors"
	"activity-hub/internal/middleware"
	"activity-hub/internal/websocket"

	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by the CORS middleware in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws?token= and streams the caller's new
// notifications. Browsers cannot set headers on websocket requests, so the
// token travels in the query string.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = middleware.BearerToken(r)
		}
		if token == "" {
			WriteResponse(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}

		userID, err := s.Tokens.Parse(token)
		if err != nil {
			s.Logger.Infof("WebSocket connection refused: %v", err)
			WriteResponse(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		if _, appErr := s.ask(&actors.GetCurrentUserMsg{ActorID: userID}); appErr != nil {
			s.Logger.Infof("WebSocket connection refused for user %d: %v", userID, appErr)
			s.writeAppError(w, appErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.Logger.Warnf("WebSocket upgrade failed for user %d: %v", userID, err)
			return
		}

		client := websocket.NewClient(s.Hub, userID, conn, s.Logger)
		if !s.Hub.Attach(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
