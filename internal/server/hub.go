package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Hub fans per-frame events out to connected WebSocket clients. The
// detection pipeline publishes; browser dashboards subscribe at
// /api/events.
type Hub struct {
	clients map[*websocket.Conn]string
	mu      sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()

	h.mu.Lock()
	h.clients[conn] = clientID
	h.mu.Unlock()
	log.Printf("events client connected: %s", clientID)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		log.Printf("events client disconnected: %s", clientID)
	}()

	// Keep the connection alive by draining incoming messages.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends the value as a JSON text message to every connected client.
// Slow or broken clients are skipped; they clean themselves up when their
// read loop fails.
func (h *Hub) Publish(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("events marshal error: %v", err)
		return
	}

	for conn, clientID := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("events write to %s failed: %v", clientID, err)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
