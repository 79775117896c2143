// file: controllers/realtime_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"go-ballpark/middleware"
	"go-ballpark/websocket"
)

// RealtimeController upgrades browsers onto the live channel.
type RealtimeController struct {
	Hub *websocket.Hub
}

// NewRealtimeController binds the controller to hub.
func NewRealtimeController(hub *websocket.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// Connect subscribes the browser to its visitor topic and, with ?gameId=,
// to that game's comment activity.
func (rc *RealtimeController) Connect(c *gin.Context) {
	id := ""
	if v := middleware.CurrentVisitor(c); v != nil {
		id = v.ID
	}
	rc.Hub.ServeWs(c.Writer, c.Request, id)
}
