// file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
)

// AdminRequired sends visitors without the admin role back to the schedule.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := CurrentVisitor(c)
		isAdmin := v != nil && v.Session.IsAdmin()

		logger.Debug.Printf("AdminRequired Middleware - isAdmin=%v", isAdmin)

		if !isAdmin {
			logger.Warn.Println("AdminRequired Middleware - Unauthorized attempt blocked")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
