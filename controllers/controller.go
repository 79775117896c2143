// Package controllers renders each screen's container state and turns form
// posts into container intents.
// file: controllers/controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
	"go-ballpark/middleware"
	"go-ballpark/viewstate"
)

var (
	ApplicationURL string
	WebsocketURL   string

	// Location buckets games into local calendar days.
	Location = time.Local
	now      = time.Now
)

// SetConfig records the public URLs rendered into pages.
func SetConfig(appURL, wsURL string) {
	ApplicationURL = appURL
	WebsocketURL = wsURL
	logger.Info.Printf("SetConfig: ApplicationURL=%s, WebsocketURL=%s", ApplicationURL, WebsocketURL)
}

// workspaceOf returns the visitor's screens, or nil (after replying) when the
// request has no visitor.
func workspaceOf(c *gin.Context) *viewstate.Workspace {
	v := middleware.CurrentVisitor(c)
	if v == nil {
		logger.Error.Printf("workspaceOf: no visitor attached to %s", c.Request.URL.Path)
		c.String(http.StatusInternalServerError, "visitor missing")
		c.Abort()
		return nil
	}
	return v.Workspace
}

// render adds the values every layout needs and writes the template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if v := middleware.CurrentVisitor(c); v != nil {
		if u, ok := v.Session.User(); ok {
			data["User"] = u
		}
		data["IsAdmin"] = v.Session.IsAdmin()
		data["VisitorID"] = v.ID
	}
	data["WebsocketURL"] = WebsocketURL
	c.HTML(status, name, data)
}

// idParam parses the named path parameter, replying 400 on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid %s", name)
		c.Abort()
		return 0, false
	}
	return id, true
}

// formInt parses an optional integer form field.
func formInt(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func formID(c *gin.Context, name string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(c.PostForm(name)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryInt reads an integer query value with a default.
func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}

// backTo finishes a post with a redirect to the screen that shows the result.
func backTo(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}
