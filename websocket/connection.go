// file: websocket/connection.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-ballpark/logger"
)

// WSConn is the part of *websocket.Conn a Connection uses.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection is one browser tab.
type Connection struct {
	hub  *Hub
	conn WSConn
	send chan []byte

	mu     sync.RWMutex
	topics map[string]bool
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// VisitorTopic addresses one visitor's tabs.
func VisitorTopic(visitorID string) string { return "visitor:" + visitorID }

// GameTopic addresses every tab showing a game.
func GameTopic(gameID int64) string { return "game:" + strconv.FormatInt(gameID, 10) }

func newConnection(h *Hub, conn WSConn, topics ...string) *Connection {
	c := &Connection{hub: h, conn: conn, send: make(chan []byte, 64), topics: make(map[string]bool)}
	for _, t := range topics {
		c.topics[t] = true
	}
	return c
}

func (c *Connection) subscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topics[topic]
}

func (c *Connection) setTopic(topic string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.topics[topic] = true
	} else {
		delete(c.topics, topic)
	}
}

// ServeWs upgrades the request and subscribes the connection to the
// visitor's topic and, with a gameId query, to that game.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, visitorID string) {
	if visitorID == "" {
		logger.Warn.Println("[ServeWs] No visitor; rejecting WebSocket connection")
		http.Error(w, "No visitor session", http.StatusUnauthorized)
		return
	}
	topics := []string{VisitorTopic(visitorID)}
	if raw := r.URL.Query().Get("gameId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid gameId", http.StatusBadRequest)
			return
		}
		topics = append(topics, GameTopic(id))
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("[ServeWs] connected: remoteAddr=%v, topics=%v", r.RemoteAddr, topics)

	c := newConnection(h, wsConn, topics...)
	h.register(c)
	go c.readPump()
	go c.writePump()
}

// clientMessage is what browsers may send.
type clientMessage struct {
	Action string `json:"action"`
	GameID int64  `json:"gameId"`
}

func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Debug.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Warn.Printf("[readPump] Invalid JSON from %v: %v", c.conn.RemoteAddr(), err)
			continue
		}
		c.handleIncoming(msg)
	}
}

func (c *Connection) handleIncoming(msg clientMessage) {
	switch msg.Action {
	case "subscribe":
		if msg.GameID > 0 {
			c.setTopic(GameTopic(msg.GameID), true)
		}
	case "unsubscribe":
		c.setTopic(GameTopic(msg.GameID), false)
	default:
		logger.Debug.Printf("[handleIncoming] Unhandled action: %s", msg.Action)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}
