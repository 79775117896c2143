// file: controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-ballpark/logger"
	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// ShowLoginPage renders the login form. Signed-in visitors go to the schedule.
func ShowLoginPage(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	if w.Session.State().Authenticated() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	st := w.Login.State()
	w.Login.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "login.html", gin.H{"Login": st})
}

// PerformLogin submits the credentials.
func PerformLogin(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	username := c.PostForm("username")
	st := w.Login.Submit(c.Request.Context(), username, c.PostForm("password"))
	if st.User == nil {
		logger.Warn.Printf("PerformLogin: login failed for %s", username)
		backTo(c, "/login")
		return
	}
	logger.Info.Printf("PerformLogin: %s signed in", username)
	backTo(c, "/")
}

// Logout ends the backend session and drops the member's screens.
func Logout(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	w.Login.Logout(c.Request.Context())
	w.ForgetUser()
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowRegisterPage renders the registration form.
func ShowRegisterPage(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	st := w.Register.State()
	w.Register.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "register.html", gin.H{
		"Register": st,
		"Username": st.Check(viewstate.FieldUsername),
		"Email":    st.Check(viewstate.FieldEmail),
	})
}

// CheckField records a keystroke in the username or email field. The
// availability result arrives later over the live channel.
func CheckField(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	field := c.PostForm("field")
	if field != viewstate.FieldUsername && field != viewstate.FieldEmail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
		return
	}
	st := w.Register.Input(field, c.PostForm("value"))
	fc := st.Check(field)
	c.JSON(http.StatusAccepted, gin.H{
		"field":     field,
		"value":     fc.Value,
		"checking":  fc.Checking,
		"available": fc.Available,
		"error":     fc.Error,
	})
}

// PerformRegister submits the registration form.
func PerformRegister(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	req := models.RegisterRequest{
		Username:    strings.TrimSpace(c.PostForm("username")),
		Password:    c.PostForm("password"),
		Name:        strings.TrimSpace(c.PostForm("name")),
		Nickname:    strings.TrimSpace(c.PostForm("nickname")),
		Email:       strings.TrimSpace(c.PostForm("email")),
		PhoneNumber: strings.TrimSpace(c.PostForm("phoneNumber")),
	}
	st := w.Register.Submit(c.Request.Context(), req, c.PostForm("confirmPassword"))
	if !st.Registered {
		backTo(c, "/register")
		return
	}
	// carry the success notice over to the login screen
	w.Login.Dispatch(viewstate.SetMessage{Message: st.Message})
	w.Register.Dispatch(viewstate.ClearMessage{})
	backTo(c, "/login")
}
