// Package middleware attaches the visitor to each request and guards routes.
// file: middleware/visitor.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
	"go-ballpark/services"
)

// SessionKey is the cookie session key holding the visitor id.
const SessionKey = "visitor"

// contextKey is where the attached *services.Visitor lives on the gin context.
const contextKey = "ballpark.visitor"

// Visitor loads (or creates) the visitor named by the session cookie and
// asks the backend who is signed in on the visitor's first request.
func Visitor(svc services.VisitorServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(SessionKey).(string)

		v, err := svc.Attach(id)
		if err != nil {
			logger.Error.Printf("Visitor: attach failed: %v", err)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		if v.ID != id {
			session.Set(SessionKey, v.ID)
			if err := session.Save(); err != nil {
				logger.Warn.Printf("Visitor: saving session: %v", err)
			}
		}
		if v.NeedsCheck() {
			st := v.Session.Check(c.Request.Context())
			logger.Debug.Printf("Visitor: %s session is %s", v.ID, st.Phase)
		}

		c.Set(contextKey, v)
		c.Next()
	}
}

// CurrentVisitor returns the visitor attached by Visitor, or nil.
func CurrentVisitor(c *gin.Context) *services.Visitor {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	visitor, _ := v.(*services.Visitor)
	return visitor
}

// SetVisitor attaches v directly; used by handlers' tests.
func SetVisitor(c *gin.Context, v *services.Visitor) {
	c.Set(contextKey, v)
}
