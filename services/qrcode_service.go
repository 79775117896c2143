// services/qrcode_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder renders content as a PNG. qrcode.Encode satisfies it.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GameShareURL is the public address of a game's detail page.
func GameShareURL(applicationURL string, gameID int64) string {
	if applicationURL == "" {
		applicationURL = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/games/%d", strings.TrimRight(applicationURL, "/"), gameID)
}

// GenerateQRCode encodes content as a square PNG of the larger dimension.
func GenerateQRCode(content string, width, height int, encode QRCodeEncoder) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid dimensions: width and height must be positive")
	}
	if encode == nil {
		encode = qrcode.Encode
	}
	size := max(width, height)
	png, err := encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
