// file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
	"go-ballpark/services"
)

// qrEncoder is replaced in tests.
var qrEncoder services.QRCodeEncoder

// Health reports liveness.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GetQRCode serves a PNG linking to the game's detail page.
func GetQRCode(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	target := services.GameShareURL(ApplicationURL, id)

	png, err := services.GenerateQRCode(target, 256, 256, qrEncoder)
	if err != nil {
		logger.Error.Printf("GetQRCode: Failed to generate QR code for %s: %v", target, err)
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	logger.Debug.Printf("GetQRCode: QR code generated for %s", target)
	c.Data(http.StatusOK, "image/png", png)
}

// Heartbeat keeps an open page's visitor from being swept as idle. The
// visitor middleware has already refreshed its last-seen time.
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
