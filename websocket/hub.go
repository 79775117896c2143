// Package websocket pushes live updates to browsers: comment activity on a
// game and availability results for one visitor.
// file: websocket/hub.go
package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"go-ballpark/logger"
)

// Hub owns every open connection and fans messages out by topic.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool
	broadcast   chan []byte
	upgrader    websocket.Upgrader
	gauge       func(count int)
}

// NewHub creates a hub accepting browser connections from allowedOrigins.
// gauge, when set, is called with the connection count after every change.
func NewHub(allowedOrigins []string, gauge func(count int)) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan []byte, 256),
		gauge:       gauge,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Run distributes broadcast messages until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case msg := <-h.broadcast:
			h.deliver(msg)
		case <-stop:
			logger.Info.Println("[Hub.Run] stopping")
			return
		}
	}
}

func (h *Hub) deliver(msg []byte) {
	var envelope struct {
		Topic string `json:"topic"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		logger.Warn.Printf("[Hub.deliver] dropping malformed message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if envelope.Topic != "" && !c.subscribed(envelope.Topic) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
		}
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	h.connections[c] = true
	count := len(h.connections)
	h.mu.Unlock()
	h.report(count)
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	_, ok := h.connections[c]
	if ok {
		delete(h.connections, c)
		close(c.send)
	}
	count := len(h.connections)
	h.mu.Unlock()
	if ok {
		h.report(count)
	}
}

func (h *Hub) report(count int) {
	if h.gauge != nil {
		h.gauge(count)
	}
}

// publish queues msg without blocking the caller.
func (h *Hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn.Println("[Hub.publish] broadcast queue full; dropping message")
	}
}
