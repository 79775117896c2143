// file: controllers/admin_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// ---------------- teams ----------------

// ShowTeams renders the team admin table.
func ShowTeams(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	st := w.Teams.Load(c.Request.Context())
	w.Teams.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "admin_teams.html", gin.H{"Teams": st})
}

// SaveTeam creates a team, or updates it when the route carries an id.
func SaveTeam(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = idParam(c, "id"); !ok {
			return
		}
	}
	team := models.Team{Name: c.PostForm("name"), LogoURL: c.PostForm("logoUrl")}
	w.Teams.Save(c.Request.Context(), id, team)
	backTo(c, "/admin/teams")
}

// RequestTeamDelete opens the delete confirmation.
func RequestTeamDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if w := workspaceOf(c); w != nil {
		w.Teams.RequestDelete(id)
		backTo(c, "/admin/teams")
	}
}

// CancelTeamDelete closes the confirmation.
func CancelTeamDelete(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		w.Teams.CancelDelete()
		backTo(c, "/admin/teams")
	}
}

// ConfirmTeamDelete deletes the pending team.
func ConfirmTeamDelete(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		w.Teams.ConfirmDelete(c.Request.Context())
		backTo(c, "/admin/teams")
	}
}

// ---------------- members ----------------

// ShowMembers renders the member admin table.
func ShowMembers(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	m := w.Members()
	st := m.State()
	if st.Editing == nil && !st.Ban.Open {
		st = m.Load(c.Request.Context())
	}
	m.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "admin_members.html", gin.H{"Members": st})
}

func withMembers(c *gin.Context, fn func(m *viewstate.Members)) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	fn(w.Members())
	backTo(c, "/admin/members")
}

// StartMemberEdit opens the edit modal.
func StartMemberEdit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	withMembers(c, func(m *viewstate.Members) { m.StartEdit(id) })
}

// CancelMemberEdit closes the edit modal.
func CancelMemberEdit(c *gin.Context) {
	withMembers(c, func(m *viewstate.Members) { m.CancelEdit() })
}

// UpdateMember saves the edit modal.
func UpdateMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	withMembers(c, func(m *viewstate.Members) {
		member := models.Member{
			ID:          id,
			Username:    c.PostForm("username"),
			Name:        strings.TrimSpace(c.PostForm("name")),
			Nickname:    strings.TrimSpace(c.PostForm("nickname")),
			Email:       strings.TrimSpace(c.PostForm("email")),
			PhoneNumber: strings.TrimSpace(c.PostForm("phoneNumber")),
			Role:        c.PostForm("role"),
		}
		m.Update(c.Request.Context(), id, member)
	})
}

// RequestMemberDelete opens the delete confirmation.
func RequestMemberDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	withMembers(c, func(m *viewstate.Members) { m.RequestDelete(id) })
}

// CancelMemberDelete closes the confirmation.
func CancelMemberDelete(c *gin.Context) {
	withMembers(c, func(m *viewstate.Members) { m.CancelDelete() })
}

// ConfirmMemberDelete deletes the pending member.
func ConfirmMemberDelete(c *gin.Context) {
	withMembers(c, func(m *viewstate.Members) { m.ConfirmDelete(c.Request.Context()) })
}

// OpenBan opens the ban dialog for the member named in the route.
func OpenBan(c *gin.Context) {
	username := c.Param("username")
	withMembers(c, func(m *viewstate.Members) { m.OpenBan(username) })
}

// CancelBan closes the ban dialog.
func CancelBan(c *gin.Context) {
	withMembers(c, func(m *viewstate.Members) { m.CancelBan() })
}

// ConfirmBan bans permanently or for the entered number of days.
func ConfirmBan(c *gin.Context) {
	choice := viewstate.BanChoice{
		Permanent: c.PostForm("duration") == "permanent",
		Days:      c.PostForm("days"),
	}
	withMembers(c, func(m *viewstate.Members) { m.ConfirmBan(c.Request.Context(), choice) })
}

// Unban lifts a member's ban.
func Unban(c *gin.Context) {
	username := c.Param("username")
	withMembers(c, func(m *viewstate.Members) { m.Unban(c.Request.Context(), username) })
}
