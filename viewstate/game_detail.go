// file: viewstate/game_detail.go
package viewstate

import (
	"context"
	"net/http"

	"go-ballpark/api"
	"go-ballpark/derive"
	"go-ballpark/logger"
	"go-ballpark/models"
)

// GameAPI is the slice of the gateway the detail screen uses for the game.
type GameAPI interface {
	Get(ctx context.Context, id int64) (*models.Game, error)
	Update(ctx context.Context, id int64, game models.Game) (*models.Game, error)
	Delete(ctx context.Context, id int64) error
}

// LineupAPI is the slice of the gateway the detail screen uses for lineups.
type LineupAPI interface {
	Get(ctx context.Context, gameID int64) (*models.LineupResponse, error)
	Save(ctx context.Context, gameID int64, lineup models.Lineup) (*models.Lineup, error)
	Crawl(ctx context.Context, gameID int64) error
}

// LineupState is one side's confirmed lineup and its edit draft.
type LineupState struct {
	Confirmed *models.Lineup
	Draft     []models.LineupPlayer
	Editing   bool
}

// Players returns the confirmed players, sorted.
func (l LineupState) Players() []models.LineupPlayer {
	if l.Confirmed == nil {
		return nil
	}
	return l.Confirmed.Players
}

// GameDetailState is the game detail screen.
type GameDetailState struct {
	Status
	GameID  int64
	Game    *models.Game
	Draft   *models.Game
	Editing bool
	Teams   []models.Team
	Home    LineupState
	Away    LineupState
	Delete  Pending[int64]
	Deleted bool
}

// Side returns the lineup state of side.
func (s GameDetailState) Side(side models.TeamType) LineupState {
	if side == models.Away {
		return s.Away
	}
	return s.Home
}

func (s GameDetailState) withSide(side models.TeamType, l LineupState) GameDetailState {
	if side == models.Away {
		s.Away = l
	} else {
		s.Home = l
	}
	return s
}

// Detail actions.
type (
	LineupsLoaded struct {
		Home *models.Lineup
		Away *models.Lineup
	}
	StartGameEdit  struct{}
	CancelGameEdit struct{}
	SetGameDraft   struct{ Game models.Game }
	GameSaved      struct{ Game models.Game }
	GameDeleted    struct{}

	StartLineupEdit  struct{ Side models.TeamType }
	CancelLineupEdit struct{ Side models.TeamType }
	SetLineupDraft   struct {
		Side    models.TeamType
		Players []models.LineupPlayer
	}
	AddPlayer    struct{ Side models.TeamType }
	RemovePlayer struct {
		Side  models.TeamType
		Index int
	}
	LineupSaved struct {
		Side   models.TeamType
		Lineup models.Lineup
	}
)

func (LineupsLoaded) isAction()    {}
func (StartGameEdit) isAction()    {}
func (CancelGameEdit) isAction()   {}
func (SetGameDraft) isAction()     {}
func (GameSaved) isAction()        {}
func (GameDeleted) isAction()      {}
func (StartLineupEdit) isAction()  {}
func (CancelLineupEdit) isAction() {}
func (SetLineupDraft) isAction()   {}
func (AddPlayer) isAction()        {}
func (RemovePlayer) isAction()     {}
func (LineupSaved) isAction()      {}

func sortedLineup(l *models.Lineup) *models.Lineup {
	if l == nil {
		return nil
	}
	out := *l
	out.Players = derive.SortPlayers(l.Players)
	return &out
}

func reduceGameDetail(s GameDetailState, a Action) GameDetailState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Delete, a); ok {
		s.Delete = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[models.Game]:
		g := a.Payload
		draft := g.Clone()
		s.Loading = false
		s.Error = ""
		s.Game = &g
		s.Draft = &draft
	case TeamsLoaded:
		s.Teams = a.Teams
	case LineupsLoaded:
		s.Home = LineupState{Confirmed: sortedLineup(a.Home)}
		s.Away = LineupState{Confirmed: sortedLineup(a.Away)}
		s.Home.Draft = models.ClonePlayers(s.Home.Players())
		s.Away.Draft = models.ClonePlayers(s.Away.Players())
	case StartGameEdit:
		if s.Game != nil {
			draft := s.Game.Clone()
			s.Draft = &draft
			s.Editing = true
		}
	case CancelGameEdit:
		if s.Game != nil {
			draft := s.Game.Clone()
			s.Draft = &draft
		}
		s.Editing = false
	case SetGameDraft:
		draft := a.Game.Clone()
		s.Draft = &draft
	case GameSaved:
		g := a.Game
		draft := g.Clone()
		s.Game = &g
		s.Draft = &draft
		s.Editing = false
	case GameDeleted:
		s.Deleted = true
	case StartLineupEdit:
		l := s.Side(a.Side)
		l.Draft = models.ClonePlayers(l.Players())
		l.Editing = true
		s = s.withSide(a.Side, l)
	case CancelLineupEdit:
		l := s.Side(a.Side)
		l.Draft = models.ClonePlayers(l.Players())
		l.Editing = false
		s = s.withSide(a.Side, l)
	case SetLineupDraft:
		l := s.Side(a.Side)
		l.Draft = models.ClonePlayers(a.Players)
		s = s.withSide(a.Side, l)
	case AddPlayer:
		l := s.Side(a.Side)
		n := len(l.Draft) + 1
		l.Draft = append(models.ClonePlayers(l.Draft), models.LineupPlayer{OrderNumber: &n})
		s = s.withSide(a.Side, l)
	case RemovePlayer:
		l := s.Side(a.Side)
		if a.Index < 0 || a.Index >= len(l.Draft) {
			return s
		}
		rest := append(models.ClonePlayers(l.Draft[:a.Index]), l.Draft[a.Index+1:]...)
		l.Draft = derive.Renumber(rest)
		s = s.withSide(a.Side, l)
	case LineupSaved:
		saved := sortedLineup(&a.Lineup)
		s = s.withSide(a.Side, LineupState{Confirmed: saved, Draft: models.ClonePlayers(saved.Players)})
	default:
		return unhandled("GameDetail", s, a)
	}
	return s
}

// GameDetail drives one game's detail screen: game edit, both lineups,
// delete and lineup crawl.
type GameDetail struct {
	*Container[GameDetailState]
	games   GameAPI
	lineups LineupAPI
	teams   TeamsAPI
	viewer  Viewer
}

// NewGameDetail creates the container for gameID.
func NewGameDetail(gameID int64, games GameAPI, lineups LineupAPI, teams TeamsAPI, viewer Viewer) *GameDetail {
	return &GameDetail{
		Container: NewContainer("GameDetail", GameDetailState{GameID: gameID}, reduceGameDetail),
		games:     games,
		lineups:   lineups,
		teams:     teams,
		viewer:    viewer,
	}
}

// Load fetches the game and then both lineups. A missing lineup is an empty
// state; other lineup failures only notify.
func (d *GameDetail) Load(ctx context.Context) GameDetailState {
	id := d.State().GameID
	t := d.Begin("game", FetchStart{})
	game, err := d.games.Get(ctx, id)
	if err != nil {
		logger.Warn.Printf("[GameDetail.Load] game %d: %v", id, err)
		msg := messageFor(err, "Failed to load the game.", map[int]string{http.StatusNotFound: "The game does not exist."})
		d.Resolve(t, FetchError{Message: msg})
		return d.State()
	}
	if !d.Resolve(t, FetchSuccess[models.Game]{Payload: *game}) {
		return d.State()
	}
	d.loadLineups(ctx, id)
	return d.State()
}

func (d *GameDetail) loadLineups(ctx context.Context, id int64) {
	t := d.Begin("lineups")
	resp, err := d.lineups.Get(ctx, id)
	switch {
	case api.IsStatus(err, http.StatusNotFound):
		d.Resolve(t, LineupsLoaded{})
	case err != nil:
		logger.Warn.Printf("[GameDetail.loadLineups] game %d: %v", id, err)
		d.Resolve(t, SetMessage{Message: messageFor(err, "Failed to load the lineups.", nil)})
	default:
		d.Resolve(t, LineupsLoaded{Home: resp.HomeLineup, Away: resp.AwayLineup})
	}
}

// LoadTeams fetches the team list for the edit pickers and logos.
func (d *GameDetail) LoadTeams(ctx context.Context) GameDetailState {
	t := d.Begin("teams")
	teams, err := d.teams.List(ctx)
	if err != nil {
		d.Resolve(t, SetMessage{Message: "Failed to load the team list."})
		return d.State()
	}
	d.Resolve(t, TeamsLoaded{Teams: teams})
	return d.State()
}

func (d *GameDetail) requireAdmin() (GameDetailState, bool) {
	if !d.viewer.IsAdmin() {
		return d.Dispatch(SetMessage{Message: MsgAdminOnly}), false
	}
	return GameDetailState{}, true
}

// StartEdit clones the confirmed game into the draft.
func (d *GameDetail) StartEdit() GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	return d.Dispatch(StartGameEdit{})
}

// CancelEdit discards the draft.
func (d *GameDetail) CancelEdit() GameDetailState {
	return d.Dispatch(CancelGameEdit{})
}

// Save sends the draft. The confirmed copy changes only from the response.
func (d *GameDetail) Save(ctx context.Context, draft models.Game) GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	d.Dispatch(SetGameDraft{Game: draft})
	if draft.HomeTeam == nil || draft.OpponentTeam == nil {
		return d.Dispatch(SetMessage{Message: "Please choose both the home and the away team."})
	}
	if !draft.Status.Valid() {
		return d.Dispatch(SetMessage{Message: "Please choose a valid game status."})
	}

	id := d.State().GameID
	d.Dispatch(ActionStart{})
	saved, err := d.games.Update(ctx, id, draft)
	if err != nil {
		logger.Warn.Printf("[GameDetail.Save] game %d: %v", id, err)
		return d.Dispatch(ActionDone{}, SetMessage{Message: "Failed to update the game: " + messageFor(err, api.ServerMessage(err, "unexpected error"), nil)})
	}
	return d.Dispatch(ActionDone{}, GameSaved{Game: *saved}, SetMessage{Message: "The game was updated."})
}

// RequestDelete opens the delete confirmation.
func (d *GameDetail) RequestDelete() GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	return d.Dispatch(OpenConfirm[int64]{Target: d.State().GameID, Prompt: "Delete this game?"})
}

// CancelDelete closes the confirmation.
func (d *GameDetail) CancelDelete() GameDetailState {
	return d.Dispatch(CloseConfirm{})
}

// ConfirmDelete deletes the game once the dialog is open.
func (d *GameDetail) ConfirmDelete(ctx context.Context) GameDetailState {
	st := d.State()
	if !st.Delete.Open {
		return st
	}
	d.Dispatch(CloseConfirm{})
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	if err := d.games.Delete(ctx, st.Delete.Target); err != nil {
		logger.Warn.Printf("[GameDetail.ConfirmDelete] game %d: %v", st.Delete.Target, err)
		return d.Dispatch(SetMessage{Message: messageFor(err, "Failed to delete the game.", nil)})
	}
	logger.Info.Printf("[GameDetail.ConfirmDelete] game %d deleted", st.Delete.Target)
	return d.Dispatch(GameDeleted{}, SetMessage{Message: "The game was deleted."})
}

// StartLineupEdit opens side for editing.
func (d *GameDetail) StartLineupEdit(side models.TeamType) GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	return d.Dispatch(StartLineupEdit{Side: side})
}

// CancelLineupEdit discards side's draft.
func (d *GameDetail) CancelLineupEdit(side models.TeamType) GameDetailState {
	return d.Dispatch(CancelLineupEdit{Side: side})
}

// EditLineup applies form edits to side's draft, then optionally adds a row
// or removes the row at remove (-1 for none).
func (d *GameDetail) EditLineup(side models.TeamType, players []models.LineupPlayer, add bool, remove int) GameDetailState {
	actions := []Action{SetLineupDraft{Side: side, Players: players}}
	if add {
		actions = append(actions, AddPlayer{Side: side})
	}
	if remove >= 0 {
		actions = append(actions, RemovePlayer{Side: side, Index: remove})
	}
	return d.Dispatch(actions...)
}

// SaveLineup replaces side's lineup with the draft's complete rows.
func (d *GameDetail) SaveLineup(ctx context.Context, side models.TeamType, players []models.LineupPlayer) GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	d.Dispatch(SetLineupDraft{Side: side, Players: players})
	id := d.State().GameID
	lineup := models.Lineup{GameID: id, TeamType: side, Players: derive.SavablePlayers(players)}

	saved, err := d.lineups.Save(ctx, id, lineup)
	if err != nil {
		logger.Warn.Printf("[GameDetail.SaveLineup] game %d %s: %v", id, side, err)
		return d.Dispatch(SetMessage{Message: messageFor(err, "Failed to update the "+sideLabel(side)+" lineup.", nil)})
	}
	return d.Dispatch(LineupSaved{Side: side, Lineup: *saved}, SetMessage{Message: "The " + sideLabel(side) + " lineup was updated."})
}

// CrawlLineups scrapes both lineups and reloads. Admin only.
func (d *GameDetail) CrawlLineups(ctx context.Context) GameDetailState {
	if st, ok := d.requireAdmin(); !ok {
		return st
	}
	id := d.State().GameID
	d.Dispatch(ActionStart{})
	if err := d.lineups.Crawl(ctx, id); err != nil {
		logger.Error.Printf("[GameDetail.CrawlLineups] game %d: %v", id, err)
		return d.Dispatch(ActionDone{}, SetMessage{Message: "Lineup crawl failed: " + api.ServerMessage(err, messageFor(err, "unexpected error", nil))})
	}
	d.Dispatch(ActionDone{})
	d.Load(ctx)
	return d.Dispatch(SetMessage{Message: "Lineups were crawled and saved."})
}

func sideLabel(side models.TeamType) string {
	if side == models.Away {
		return "away"
	}
	return "home"
}
