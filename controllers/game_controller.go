// file: controllers/game_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-ballpark/derive"
	"go-ballpark/logger"
	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// ShowSchedule renders the highlights and the month calendar.
func ShowSchedule(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	ctx := c.Request.Context()
	st := w.GameList.State()
	year := queryInt(c, "year", st.Year)
	month := time.Month(queryInt(c, "month", int(st.Month)))
	if year != st.Year || month != st.Month {
		st = w.GameList.SelectMonth(ctx, year, month)
	} else {
		st = w.GameList.Load(ctx)
	}
	w.GameList.Dispatch(viewstate.ClearMessage{})

	t := now()
	buckets := derive.BucketByDay(st.Games, st.Year, st.Month, Location)
	prev := time.Date(st.Year, st.Month, 1, 0, 0, 0, 0, Location).AddDate(0, -1, 0)
	next := time.Date(st.Year, st.Month, 1, 0, 0, 0, 0, Location).AddDate(0, 1, 0)
	render(c, http.StatusOK, "games.html", gin.H{
		"Games":      st,
		"Highlights": derive.PartitionGames(st.Games, t, Location),
		"Calendar":   derive.Calendar(st.Year, st.Month, buckets, t, Location),
		"Prev":       prev,
		"Next":       next,
		"Statuses":   models.GameStatuses,
	})
}

// CreateGame registers a game from the admin form.
func CreateGame(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	game, msg := parseGameForm(c, w.GameList.State().Teams)
	if msg == "" && (game.HomeTeam == nil || game.OpponentTeam == nil) {
		msg = "Please choose both the home and the away team."
	}
	if msg != "" {
		w.GameList.Dispatch(viewstate.SetMessage{Message: msg})
		backTo(c, "/")
		return
	}
	st := w.GameList.Create(c.Request.Context(), game)
	if st.Created != nil {
		logger.Info.Printf("CreateGame: game %d registered", st.Created.ID)
	}
	backTo(c, fmt.Sprintf("/?year=%d&month=%d", st.Year, st.Month))
}

// CrawlGames refreshes the selected month from the league site.
func CrawlGames(c *gin.Context) {
	w := workspaceOf(c)
	if w == nil {
		return
	}
	st := w.GameList.Crawl(c.Request.Context())
	backTo(c, fmt.Sprintf("/?year=%d&month=%d", st.Year, st.Month))
}

// ShowGame renders one game with its lineups and comment thread. Fresh data
// is fetched unless an edit is in progress.
func ShowGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	ctx := c.Request.Context()
	d := w.GameDetail(id)

	st := d.State()
	if st.Game == nil || !(st.Editing || st.Home.Editing || st.Away.Editing) {
		st = d.Load(ctx)
	}
	if st.Teams == nil && st.Error == "" {
		st = d.LoadTeams(ctx)
	}
	d.Dispatch(viewstate.ClearMessage{})
	if st.Error != "" || st.Game == nil {
		render(c, http.StatusOK, "game.html", gin.H{"Detail": st})
		return
	}

	thread := w.Comments(id)
	thread.SetTeams(st.Game.HomeTeamName(), st.Game.OpponentTeamName())
	var cs viewstate.CommentsState
	if f := c.Query("filter"); f != "" {
		thread.SetFilter(ctx, f)
		cs = thread.LoadCounts(ctx)
	} else {
		cs = thread.Load(ctx, queryInt(c, "page", thread.State().Page))
	}
	thread.Dispatch(viewstate.ClearMessage{})

	home, away := derive.WinLoss(*st.Game)
	render(c, http.StatusOK, "game.html", gin.H{
		"Detail":    st,
		"Comments":  cs,
		"Visible":   cs.Visible(),
		"CanModify": thread.CanModify,
		"Split":     cs.Split(),
		"HomeWL":    home,
		"AwayWL":    away,
		"Statuses":  models.GameStatuses,
		"QRCode":    fmt.Sprintf("/games/%d/qrcode", id),
	})
}

// StartGameEdit opens the edit form.
func StartGameEdit(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) { d.StartEdit() })
}

// CancelGameEdit closes the edit form.
func CancelGameEdit(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) { d.CancelEdit() })
}

// UpdateGame saves the edit form.
func UpdateGame(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) {
		game, msg := parseGameForm(c, d.State().Teams)
		if msg != "" {
			d.Dispatch(viewstate.SetMessage{Message: msg})
			return
		}
		d.Save(c.Request.Context(), game)
	})
}

// RequestGameDelete opens the delete confirmation.
func RequestGameDelete(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) { d.RequestDelete() })
}

// CancelGameDelete closes the delete confirmation.
func CancelGameDelete(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) { d.CancelDelete() })
}

// ConfirmGameDelete deletes the game and returns to the schedule.
func ConfirmGameDelete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	st := w.GameDetail(id).ConfirmDelete(c.Request.Context())
	if st.Deleted {
		w.GameList.Dispatch(viewstate.SetMessage{Message: st.Message})
		backTo(c, "/")
		return
	}
	backTo(c, fmt.Sprintf("/games/%d", id))
}

// StartLineupEdit opens one side's lineup editor.
func StartLineupEdit(c *gin.Context) {
	side, ok := sideParam(c)
	if !ok {
		return
	}
	withDetail(c, func(d *viewstate.GameDetail) { d.StartLineupEdit(side) })
}

// CancelLineupEdit discards one side's draft.
func CancelLineupEdit(c *gin.Context) {
	side, ok := sideParam(c)
	if !ok {
		return
	}
	withDetail(c, func(d *viewstate.GameDetail) { d.CancelLineupEdit(side) })
}

// EditLineup handles the lineup editor's buttons: add a row, remove a row or
// save. The submitted rows are the current draft in every case.
func EditLineup(c *gin.Context) {
	side, ok := sideParam(c)
	if !ok {
		return
	}
	withDetail(c, func(d *viewstate.GameDetail) {
		players := parseLineupForm(c)
		if idx, ok := formInt(c, "remove"); ok {
			d.EditLineup(side, players, false, idx)
			return
		}
		switch c.PostForm("op") {
		case "add":
			d.EditLineup(side, players, true, -1)
		default:
			d.SaveLineup(c.Request.Context(), side, players)
		}
	})
}

// CrawlLineups scrapes both lineups.
func CrawlLineups(c *gin.Context) {
	withDetail(c, func(d *viewstate.GameDetail) { d.CrawlLineups(c.Request.Context()) })
}

func withDetail(c *gin.Context, fn func(d *viewstate.GameDetail)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	fn(w.GameDetail(id))
	backTo(c, fmt.Sprintf("/games/%d", id))
}

func sideParam(c *gin.Context) (models.TeamType, bool) {
	switch models.TeamType(strings.ToUpper(c.Param("side"))) {
	case models.Home:
		return models.Home, true
	case models.Away:
		return models.Away, true
	}
	c.String(http.StatusBadRequest, "invalid side")
	c.Abort()
	return "", false
}

// parseGameForm reads the game form. Teams are resolved against teams; an
// unknown id leaves the side nil.
func parseGameForm(c *gin.Context, teams []models.Team) (models.Game, string) {
	game := models.Game{
		Location: strings.TrimSpace(c.PostForm("location")),
		Status:   models.GameStatus(c.PostForm("status")),
	}
	if game.Status == "" {
		game.Status = models.StatusScheduled
	}
	date, err := models.ParseLocalTime(strings.TrimSpace(c.PostForm("gameDate")))
	if err != nil {
		return game, "Please enter a valid game date."
	}
	game.GameDate = date
	game.HomeTeam = findTeam(teams, formID(c, "homeTeamId"))
	game.OpponentTeam = findTeam(teams, formID(c, "opponentTeamId"))
	var ok bool
	if game.HomeScore, ok = formScore(c, "homeScore"); !ok {
		return game, msgInvalidScore
	}
	if game.AwayScore, ok = formScore(c, "awayScore"); !ok {
		return game, msgInvalidScore
	}
	return game, ""
}

const msgInvalidScore = "Scores must be whole numbers of zero or more."

// formScore reads an optional score. A blank field is no score; anything
// else must be a non-negative integer.
func formScore(c *gin.Context, name string) (*int, bool) {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

func findTeam(teams []models.Team, id int64) *models.Team {
	for _, t := range teams {
		if t.ID == id {
			team := t
			return &team
		}
	}
	return nil
}

// parseLineupForm reads the parallel player arrays of the lineup editor.
func parseLineupForm(c *gin.Context) []models.LineupPlayer {
	names := c.PostFormArray("playerName")
	positions := c.PostFormArray("position")
	orders := c.PostFormArray("orderNumber")
	ids := c.PostFormArray("playerId")

	players := make([]models.LineupPlayer, len(names))
	for i := range names {
		p := models.LineupPlayer{PlayerName: strings.TrimSpace(names[i])}
		if i < len(positions) {
			p.Position = strings.TrimSpace(positions[i])
		}
		if i < len(orders) {
			if n, err := strconv.Atoi(strings.TrimSpace(orders[i])); err == nil {
				p.OrderNumber = &n
			}
		}
		if i < len(ids) {
			if id, err := strconv.ParseInt(ids[i], 10, 64); err == nil {
				p.ID = &id
			}
		}
		players[i] = p
	}
	return players
}
