package api

import (
	"log"
	"net/http"
	"sync"

	"tcg-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The ops surface sits behind the operator's network; origin checks
	// belong to the fronting proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressHub fans sync progress events out to connected websocket
// clients. A slow or dead client is dropped rather than blocking the
// orchestrator.
type ProgressHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{clients: make(map[*websocket.Conn]bool)}
}

// Broadcast sends one progress event to every subscriber.
func (h *ProgressHub) Broadcast(p services.Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(p); err != nil {
			log.Printf("[WS] dropping client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Serve upgrades the request and keeps the connection registered until
// the client goes away.
func (h *ProgressHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain control frames; the stream is write-only from our side.
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
