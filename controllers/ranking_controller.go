// file: controllers/ranking_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// ShowRankings renders the standings of the requested season.
func ShowRankings(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	ctx := c.Request.Context()
	st := w.Rankings.Load(ctx, queryInt(c, "year", 0))
	if w.Session.IsAdmin() && st.Teams == nil {
		st = w.Rankings.LoadTeams(ctx)
	}
	w.Rankings.Dispatch(viewstate.ClearMessage{})
	render(c, http.StatusOK, "rankings.html", gin.H{"Rankings": st})
}

func rankingsPage(st viewstate.RankingsState) string {
	return fmt.Sprintf("/rankings?year=%d", st.Year)
}

// CreateRanking adds a row from the admin form.
func CreateRanking(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	rk, msg := parseRankingForm(c, w.Rankings.State().Teams)
	if msg != "" {
		backTo(c, rankingsPage(w.Rankings.Dispatch(viewstate.SetMessage{Message: msg})))
		return
	}
	backTo(c, rankingsPage(w.Rankings.Create(c.Request.Context(), rk)))
}

// UpdateRanking saves an edited row.
func UpdateRanking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	rk, msg := parseRankingForm(c, w.Rankings.State().Teams)
	if msg != "" {
		backTo(c, rankingsPage(w.Rankings.Dispatch(viewstate.SetMessage{Message: msg})))
		return
	}
	backTo(c, rankingsPage(w.Rankings.Update(c.Request.Context(), id, rk)))
}

// RequestRankingDelete opens the delete confirmation.
func RequestRankingDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	backTo(c, rankingsPage(w.Rankings.RequestDelete(id)))
}

// CancelRankingDelete closes the confirmation.
func CancelRankingDelete(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		backTo(c, rankingsPage(w.Rankings.CancelDelete()))
	}
}

// ConfirmRankingDelete deletes the pending row.
func ConfirmRankingDelete(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		backTo(c, rankingsPage(w.Rankings.ConfirmDelete(c.Request.Context())))
	}
}

// CrawlRankings replaces the standings with the league table.
func CrawlRankings(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		backTo(c, rankingsPage(w.Rankings.Crawl(c.Request.Context())))
	}
}

// CalculateRankings replaces the standings with the server's recomputation.
func CalculateRankings(c *gin.Context) {
	if w := workspaceOf(c); w != nil {
		backTo(c, rankingsPage(w.Rankings.Calculate(c.Request.Context())))
	}
}

func parseRankingForm(c *gin.Context, teams []models.Team) (models.TeamRanking, string) {
	rk := models.TeamRanking{Team: findTeam(teams, formID(c, "teamId"))}
	rk.SeasonYear, _ = formInt(c, "seasonYear")
	rk.Wins, _ = formInt(c, "wins")
	rk.Losses, _ = formInt(c, "losses")
	rk.Draws, _ = formInt(c, "draws")
	rk.CurrentRank, _ = formInt(c, "currentRank")
	if raw := strings.TrimSpace(c.PostForm("gamesBehind")); raw != "" {
		gb, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rk, "Games behind must be a number."
		}
		rk.GamesBehind = gb
	}
	return rk, ""
}
