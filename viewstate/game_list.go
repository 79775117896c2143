// file: viewstate/game_list.go
package viewstate

import (
	"context"
	"time"

	"go-ballpark/logger"
	"go-ballpark/models"
)

// GamesAPI is the slice of the gateway the schedule screens use.
type GamesAPI interface {
	List(ctx context.Context) ([]models.Game, error)
	Create(ctx context.Context, game models.Game) (*models.Game, error)
	Crawl(ctx context.Context, seasonYear, month int) error
}

// GameListState is the schedule screen.
type GameListState struct {
	Status
	Games []models.Game
	Teams []models.Team
	Year  int
	Month time.Month
	// Created is set after a successful create so the form can redirect.
	Created *models.Game
}

// SelectMonth changes the calendar filter.
type SelectMonth struct {
	Year  int
	Month time.Month
}

// TeamsLoaded carries the team list.
type TeamsLoaded struct{ Teams []models.Team }

// GameCreated records a confirmed create.
type GameCreated struct{ Game models.Game }

func (SelectMonth) isAction() {}
func (TeamsLoaded) isAction() {}
func (GameCreated) isAction() {}

func reduceGameList(s GameListState, a Action) GameListState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[[]models.Game]:
		s.Loading = false
		s.Error = ""
		s.Games = a.Payload
	case TeamsLoaded:
		s.Teams = a.Teams
	case SelectMonth:
		s.Year = a.Year
		s.Month = a.Month
	case GameCreated:
		g := a.Game
		s.Created = &g
	default:
		return unhandled("GameList", s, a)
	}
	return s
}

// GameList drives the schedule: highlights, calendar, crawl and create.
type GameList struct {
	*Container[GameListState]
	games  GamesAPI
	teams  TeamsAPI
	viewer Viewer
}

// NewGameList starts on the month containing now.
func NewGameList(games GamesAPI, teams TeamsAPI, viewer Viewer, now time.Time) *GameList {
	initial := GameListState{Year: now.Year(), Month: now.Month()}
	return &GameList{
		Container: NewContainer("GameList", initial, reduceGameList),
		games:     games,
		teams:     teams,
		viewer:    viewer,
	}
}

// Load fetches every game, then the teams. A team failure only notifies.
func (g *GameList) Load(ctx context.Context) GameListState {
	t := g.Begin("games", FetchStart{})
	games, err := g.games.List(ctx)
	if err != nil {
		logger.Warn.Printf("[GameList.Load] %v", err)
		g.Resolve(t, FetchError{Message: messageFor(err, "Failed to load the game schedule.", nil)})
		return g.State()
	}
	g.Resolve(t, FetchSuccess[[]models.Game]{Payload: games})
	g.loadTeams(ctx)
	return g.State()
}

func (g *GameList) loadTeams(ctx context.Context) {
	t := g.Begin("teams")
	teams, err := g.teams.List(ctx)
	if err != nil {
		g.Resolve(t, SetMessage{Message: "Failed to load the team list."})
		return
	}
	g.Resolve(t, TeamsLoaded{Teams: teams})
}

// SelectMonth changes the calendar month and re-fetches.
func (g *GameList) SelectMonth(ctx context.Context, year int, month time.Month) GameListState {
	if month < time.January || month > time.December || year <= 0 {
		return g.Dispatch(SetMessage{Message: "Please choose a valid year and month."})
	}
	g.Dispatch(SelectMonth{Year: year, Month: month})
	return g.Load(ctx)
}

// Crawl refreshes the selected month from the league website. Admin only.
func (g *GameList) Crawl(ctx context.Context) GameListState {
	if !g.viewer.IsAdmin() {
		return g.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	st := g.Dispatch(ActionStart{})
	if err := g.games.Crawl(ctx, st.Year, int(st.Month)); err != nil {
		logger.Error.Printf("[GameList.Crawl] %d-%02d: %v", st.Year, st.Month, err)
		return g.Dispatch(ActionDone{}, SetMessage{Message: messageFor(err, "Failed to update the game schedule.", nil)})
	}
	g.Dispatch(ActionDone{})
	if GamePolicies.For(OpCrawl).refetches() {
		g.Load(ctx)
	}
	return g.Dispatch(SetMessage{Message: "The game schedule was updated."})
}

// Create registers a new game. Admin only; the caller validates the form.
func (g *GameList) Create(ctx context.Context, game models.Game) GameListState {
	if !g.viewer.IsAdmin() {
		return g.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	created, err := g.games.Create(ctx, game)
	if err != nil {
		logger.Warn.Printf("[GameList.Create] %v", err)
		return g.Dispatch(SetMessage{Message: messageFor(err, "Failed to register the game.", nil)})
	}
	g.Dispatch(GameCreated{Game: *created})
	if GamePolicies.For(OpCreate).refetches() {
		g.Load(ctx)
	}
	return g.Dispatch(SetMessage{Message: "The game was registered."})
}
