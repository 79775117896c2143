//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aprilGames = `[
	{"id":1,"gameDate":"2026-04-01T18:30:00","homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"FINISHED","homeScore":3,"awayScore":1},
	{"id":2,"gameDate":"2026-04-15T18:30:00","homeTeam":{"id":2,"name":"Twins"},"opponentTeam":{"id":1,"name":"Bears"},"status":"SCHEDULED"},
	{"id":3,"gameDate":"2026-05-02T14:00:00","homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"SCHEDULED"},
	{"id":9,"gameDate":"2099-01-01T14:00:00","homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"SCHEDULED"}
]`

const teamsJSON = `[{"id":1,"name":"Bears"},{"id":2,"name":"Twins"}]`

func gameBackend(t *testing.T, status string) *fakeBackend {
	b := newFakeBackend(t, status)
	b.reply("GET /games", http.StatusOK, aprilGames)
	b.reply("GET /teams", http.StatusOK, teamsJSON)
	b.reply("GET /games/1", http.StatusOK, gameJSON)
	b.reply("GET /games/1/lineup", http.StatusNotFound, `{"message":"no lineup"}`)
	b.reply("GET /games/1/comments", http.StatusOK, `{"content":[
		{"id":5,"gameId":1,"commentText":"Bears win","type":"PREDICTION","predictedTeamName":"Bears","username":"fan1","nickname":"Fan"},
		{"id":4,"gameId":1,"commentText":"nice day","type":"TEXT","username":"fan2","nickname":"Other"}
	],"number":0,"totalElements":2}`)
	b.reply("GET /games/1/comments/prediction-counts", http.StatusOK, `{"Bears":3,"Twins":1}`)
	return b
}

// fixClock pins the controllers' clock for highlight calculations.
func fixClock(t *testing.T, at time.Time) {
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestShowSchedule_Calendar(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	router := setupTestRouter(t, newTestVisitor(t, gameBackend(t, "")))
	router.GET("/", ShowSchedule)

	page := doc(t, get(router, "/?year=2026&month=4"))

	assert.Equal(t, "2026-04", page.Find("h2").Text())
	ids := page.Find("a.game").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"1", "2"}, ids, "only April games, in day order")
	assert.Equal(t, "9", page.Find(".next").Text())
}

func TestShowSchedule_InvalidMonth(t *testing.T) {
	router := setupTestRouter(t, newTestVisitor(t, gameBackend(t, "")))
	router.GET("/", ShowSchedule)

	page := doc(t, get(router, "/?year=2026&month=13"))
	assert.Equal(t, "Please choose a valid year and month.", page.Find(".flash").Text())
}

func TestCreateGame(t *testing.T) {
	b := gameBackend(t, adminStatus)
	b.reply("POST /games", http.StatusOK, `{"id":10,"gameDate":"2026-04-20T18:30:00","homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"SCHEDULED"}`)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/", ShowSchedule)
	router.POST("/games", CreateGame)

	get(router, "/?year=2026&month=4")
	w := post(router, "/games", url.Values{
		"homeTeamId":     {"1"},
		"opponentTeamId": {"2"},
		"gameDate":       {"2026-04-20T18:30"},
		"location":       {"Jamsil"},
		"status":         {"SCHEDULED"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?year=2026&month=4", w.Header().Get("Location"))
	sent := b.decoded("POST /games")
	assert.Equal(t, "Jamsil", sent["location"])
	assert.Equal(t, "Bears", sent["homeTeam"].(map[string]interface{})["name"])
}

func TestCreateGame_MissingTeam(t *testing.T) {
	b := gameBackend(t, adminStatus)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/", ShowSchedule)
	router.POST("/games", CreateGame)

	get(router, "/?year=2026&month=4")
	post(router, "/games", url.Values{"homeTeamId": {"1"}, "gameDate": {"2026-04-20T18:30"}})

	assert.Empty(t, b.body("POST /games"))
	page := doc(t, get(router, "/?year=2026&month=4"))
	assert.Equal(t, "Please choose both the home and the away team.", page.Find(".flash").Text())
}

func TestShowGame(t *testing.T) {
	router := setupTestRouter(t, newTestVisitor(t, gameBackend(t, fanStatus)))
	router.GET("/games/:id", ShowGame)

	w := get(router, "/games/1")
	require.Equal(t, http.StatusOK, w.Code)
	page := doc(t, w)

	assert.Equal(t, "Bears vs Twins", page.Find("h1").Text())
	assert.Empty(t, page.Find(".error").Text(), "a missing lineup is an empty state")
	assert.Equal(t, 0, page.Find(".home-player").Length())
	comments := page.Find(".comment").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Bears win|home", "nice day|"}, comments)
	assert.Equal(t, "75.0%", page.Find(".split").Text())
}

func TestShowGame_FilterAppliesToLoadedPage(t *testing.T) {
	router := setupTestRouter(t, newTestVisitor(t, gameBackend(t, fanStatus)))
	router.GET("/games/:id", ShowGame)

	page := doc(t, get(router, "/games/1?filter=TEXT"))
	assert.Equal(t, 1, page.Find(".comment").Length())
	assert.Equal(t, "nice day|", page.Find(".comment").Text())
}

func TestShowGame_FilterFetchesFirstPageOnce(t *testing.T) {
	b := gameBackend(t, fanStatus)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)

	page := doc(t, get(router, "/games/1?filter=Bears"))
	assert.Equal(t, "Bears win|home", page.Find(".comment").Text())
	assert.Equal(t, "75.0%", page.Find(".split").Text())
	assert.Equal(t, 1, b.calls("GET /games/1/comments"))
	assert.Equal(t, 1, b.calls("GET /games/1/comments/prediction-counts"))
}

func TestShowGame_NotFound(t *testing.T) {
	b := newFakeBackend(t, "")
	b.reply("GET /games/7", http.StatusNotFound, `{"message":"missing"}`)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)

	page := doc(t, get(router, "/games/7"))
	assert.Equal(t, "The game does not exist.", page.Find(".error").Text())
}

func TestGameEditFlow(t *testing.T) {
	b := gameBackend(t, adminStatus)
	b.reply("PUT /games/1", http.StatusOK, `{"id":1,"gameDate":"2026-04-01T18:30:00","location":"Gocheok",
		"homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"FINISHED","homeScore":5,"awayScore":2}`)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/edit", StartGameEdit)
	router.POST("/games/:id", UpdateGame)

	get(router, "/games/1")
	w := post(router, "/games/1/edit", nil)
	assert.Equal(t, "/games/1", w.Header().Get("Location"))
	assert.Equal(t, 1, doc(t, get(router, "/games/1")).Find("#edit-game").Length(), "edit mode survives the reload")

	post(router, "/games/1", url.Values{
		"homeTeamId":     {"1"},
		"opponentTeamId": {"2"},
		"gameDate":       {"2026-04-01T18:30"},
		"location":       {"Gocheok"},
		"status":         {"FINISHED"},
		"homeScore":      {"5"},
		"awayScore":      {"2"},
	})

	sent := b.decoded("PUT /games/1")
	assert.Equal(t, "FINISHED", sent["status"])
	assert.Equal(t, float64(5), sent["homeScore"])
	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, 0, page.Find("#edit-game").Length())
	assert.Equal(t, "The game was updated.", page.Find(".flash").Text())
}

func TestUpdateGame_InvalidScore(t *testing.T) {
	b := gameBackend(t, adminStatus)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/edit", StartGameEdit)
	router.POST("/games/:id", UpdateGame)

	get(router, "/games/1")
	post(router, "/games/1/edit", nil)
	for _, score := range []string{"3.0", "three", "-1"} {
		post(router, "/games/1", url.Values{
			"homeTeamId":     {"1"},
			"opponentTeamId": {"2"},
			"gameDate":       {"2026-04-01T18:30"},
			"status":         {"FINISHED"},
			"homeScore":      {score},
			"awayScore":      {" 2 "},
		})

		page := doc(t, get(router, "/games/1"))
		assert.Equal(t, "Scores must be whole numbers of zero or more.", page.Find(".flash").Text(), score)
		assert.Equal(t, 1, page.Find("#edit-game").Length(), "the form stays open for %q", score)
	}
	assert.Empty(t, b.body("PUT /games/1"))
}

func TestGameDeleteFlow(t *testing.T) {
	b := gameBackend(t, adminStatus)
	b.reply("DELETE /games/1", http.StatusNoContent, ``)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/delete", RequestGameDelete)
	router.POST("/games/:id/delete/confirm", ConfirmGameDelete)

	post(router, "/games/1/delete", nil)
	assert.Equal(t, 1, doc(t, get(router, "/games/1")).Find("#delete-game").Length())

	w := post(router, "/games/1/delete/confirm", nil)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGameDelete_ConfirmWithoutDialogDoesNothing(t *testing.T) {
	b := gameBackend(t, adminStatus)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.POST("/games/:id/delete/confirm", ConfirmGameDelete)

	w := post(router, "/games/1/delete/confirm", nil)
	assert.Equal(t, "/games/1", w.Header().Get("Location"))
}

func TestEditLineup(t *testing.T) {
	b := gameBackend(t, adminStatus)
	b.reply("PUT /games/1/lineup", http.StatusOK, `{"id":3,"gameId":1,"teamType":"HOME","players":[
		{"orderNumber":1,"playerName":"Kim","position":"SS"}]}`)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/lineups/:side/edit", StartLineupEdit)
	router.POST("/games/:id/lineups/:side", EditLineup)

	get(router, "/games/1")
	post(router, "/games/1/lineups/home/edit", nil)

	post(router, "/games/1/lineups/home", url.Values{"op": {"add"}})
	post(router, "/games/1/lineups/home", url.Values{
		"playerId":    {""},
		"orderNumber": {"1"},
		"playerName":  {"Kim"},
		"position":    {"SS"},
		"op":          {"add"},
	})
	drafts := doc(t, get(router, "/games/1")).Find(".home-draft").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Kim|1", "|2"}, drafts)

	post(router, "/games/1/lineups/home", url.Values{
		"playerId":    {"", ""},
		"orderNumber": {"1", "2"},
		"playerName":  {"Kim", ""},
		"position":    {"SS", ""},
		"op":          {"save"},
	})

	sent := b.decoded("PUT /games/1/lineup")
	assert.Equal(t, "HOME", sent["teamType"])
	assert.Len(t, sent["players"], 1, "incomplete rows are not saved")
	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, "The home lineup was updated.", page.Find(".flash").Text())
}

func TestEditLineup_RemoveRenumbers(t *testing.T) {
	b := gameBackend(t, adminStatus)
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/lineups/:side/edit", StartLineupEdit)
	router.POST("/games/:id/lineups/:side", EditLineup)

	get(router, "/games/1")
	post(router, "/games/1/lineups/home/edit", nil)
	post(router, "/games/1/lineups/home", url.Values{
		"playerId":    {"", "", ""},
		"orderNumber": {"1", "2", "3"},
		"playerName":  {"A", "B", "C"},
		"position":    {"P", "C", "1B"},
		"remove":      {"0"},
	})

	drafts := doc(t, get(router, "/games/1")).Find(".home-draft").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"B|1", "C|2"}, drafts)
}

func TestEditLineup_InvalidSide(t *testing.T) {
	router := setupTestRouter(t, newTestVisitor(t, gameBackend(t, adminStatus)))
	router.POST("/games/:id/lineups/:side", EditLineup)

	assert.Equal(t, http.StatusBadRequest, post(router, "/games/1/lineups/middle", nil).Code)
}
