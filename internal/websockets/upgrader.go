package websockets

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Upgrader is the WebSocket upgrader configuration
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin controls cross-origin requests
	CheckOrigin: func(r *http.Request) bool {
		// Dashboards are served from arbitrary hosts during development;
		// restrict to known origins in production deployments.
		return true
	},
	// Error handler for upgrade failures
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		http.Error(w, reason.Error(), status)
	},
}

// SetCheckOrigin updates the CheckOrigin function
func SetCheckOrigin(checkOrigin func(r *http.Request) bool) {
	Upgrader.CheckOrigin = checkOrigin
}
