// file: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
)

// AuthRequired redirects anonymous visitors to /login.
func AuthRequired(c *gin.Context) {
	v := CurrentVisitor(c)
	if v == nil || !v.Session.State().Authenticated() {
		logger.Warn.Printf("AuthRequired: anonymous request to %s", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}
