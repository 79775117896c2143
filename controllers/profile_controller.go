// file: controllers/profile_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// ShowProfile renders the signed-in member's profile.
func ShowProfile(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	p := w.Profile()
	st := p.State()
	if !st.Editing {
		st = p.Load(c.Request.Context())
	}
	p.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "profile.html", gin.H{"Profile": st})
}

func withProfile(c *gin.Context, fn func(p *viewstate.Profile)) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	fn(w.Profile())
	backTo(c, "/profile")
}

// StartProfileEdit enters edit mode.
func StartProfileEdit(c *gin.Context) {
	withProfile(c, func(p *viewstate.Profile) { p.StartEdit() })
}

// CancelProfileEdit leaves edit mode.
func CancelProfileEdit(c *gin.Context) {
	withProfile(c, func(p *viewstate.Profile) { p.CancelEdit() })
}

// UpdateProfile saves the profile form.
func UpdateProfile(c *gin.Context) {
	req := models.MemberUpdateRequest{
		Name:        c.PostForm("name"),
		Nickname:    c.PostForm("nickname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
	}
	withProfile(c, func(p *viewstate.Profile) { p.Update(c.Request.Context(), req) })
}

// ChangePassword rotates the password.
func ChangePassword(c *gin.Context) {
	withProfile(c, func(p *viewstate.Profile) {
		p.ChangePassword(c.Request.Context(), c.PostForm("currentPassword"), c.PostForm("newPassword"), c.PostForm("confirmPassword"))
	})
}

// RequestWithdraw opens the account deletion dialog.
func RequestWithdraw(c *gin.Context) {
	withProfile(c, func(p *viewstate.Profile) { p.RequestWithdraw() })
}

// CancelWithdraw closes the dialog.
func CancelWithdraw(c *gin.Context) {
	withProfile(c, func(p *viewstate.Profile) { p.CancelWithdraw() })
}

// ConfirmWithdraw deletes the account. The member's screens are dropped and
// the visitor lands on the schedule signed out.
func ConfirmWithdraw(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	st := w.Profile().ConfirmWithdraw(c.Request.Context(), c.PostForm("password"))
	if !st.Deleted {
		backTo(c, "/profile")
		return
	}
	w.ForgetUser()
	w.GameList.Dispatch(viewstate.SetMessage{Message: st.Message})
	backTo(c, "/")
}
