// file: websocket/messenger.go
package websocket

import (
	"encoding/json"

	"go-ballpark/logger"
)

// HubMessenger carries container notifications through a Hub to the visitor
// and game topics.
type HubMessenger struct {
	hub *Hub
}

// NewMessenger returns a messenger bound to h.
func NewMessenger(h *Hub) *HubMessenger {
	return &HubMessenger{hub: h}
}

// broadcast tags msg with topic and queues it.
func (m *HubMessenger) broadcast(topic string, msg map[string]interface{}) {
	out := make(map[string]interface{}, len(msg)+1)
	for k, v := range msg {
		out[k] = v
	}
	out["topic"] = topic
	data, err := json.Marshal(out)
	if err != nil {
		logger.Error.Printf("HubMessenger: Error marshalling message for %s: %v", topic, err)
		return
	}
	m.hub.publish(data)
	logger.Debug.Printf("HubMessenger: message queued for %s", topic)
}

// NotifyVisitor pushes event to one visitor's tabs.
func (m *HubMessenger) NotifyVisitor(visitorID, event string, payload any) {
	m.broadcast(VisitorTopic(visitorID), map[string]interface{}{"action": event, "payload": payload})
}

// NotifyGame pushes event to every tab showing gameID.
func (m *HubMessenger) NotifyGame(gameID int64, event string, payload any) {
	m.broadcast(GameTopic(gameID), map[string]interface{}{"action": event, "gameId": gameID, "payload": payload})
}
