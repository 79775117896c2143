// file: viewstate/rankings.go
package viewstate

import (
	"context"
	"time"

	"go-ballpark/derive"
	"go-ballpark/logger"
	"go-ballpark/models"
)

// RankingsAPI is the slice of the gateway the standings screens use.
type RankingsAPI interface {
	List(ctx context.Context, seasonYear int) ([]models.TeamRanking, error)
	Calculate(ctx context.Context, seasonYear int) ([]models.TeamRanking, error)
	Crawl(ctx context.Context, seasonYear int) ([]models.TeamRanking, error)
	Create(ctx context.Context, ranking models.TeamRanking) (*models.TeamRanking, error)
	Update(ctx context.Context, id int64, ranking models.TeamRanking) (*models.TeamRanking, error)
	Delete(ctx context.Context, id int64) error
}

// RankingsState is the standings table. Rankings is always sorted by
// currentRank.
type RankingsState struct {
	Status
	Year     int
	Rankings []models.TeamRanking
	Teams    []models.Team
	Delete   Pending[int64]
}

// Ranking actions.
type (
	SelectSeason   struct{ Year int }
	RankingSpliced struct{ Ranking models.TeamRanking }
	RankingRemoved struct{ ID int64 }
)

func (SelectSeason) isAction()   {}
func (RankingSpliced) isAction() {}
func (RankingRemoved) isAction() {}

func rankingID(r models.TeamRanking) int64 { return r.ID }

func reduceRankings(s RankingsState, a Action) RankingsState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Delete, a); ok {
		s.Delete = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[[]models.TeamRanking]:
		s.Loading = false
		s.Error = ""
		s.Rankings = derive.SortByRank(a.Payload)
	case TeamsLoaded:
		s.Teams = a.Teams
	case SelectSeason:
		s.Year = a.Year
	case RankingSpliced:
		s.Rankings = derive.SortByRank(spliceByID(s.Rankings, a.Ranking, rankingID))
	case RankingRemoved:
		s.Rankings = removeByID(s.Rankings, a.ID, rankingID)
	default:
		return unhandled("Rankings", s, a)
	}
	return s
}

// Rankings drives the public standings and the ranking admin table.
type Rankings struct {
	*Container[RankingsState]
	api    RankingsAPI
	teams  TeamsAPI
	viewer Viewer
}

// NewRankings starts on the season containing now.
func NewRankings(api RankingsAPI, teams TeamsAPI, viewer Viewer, now time.Time) *Rankings {
	return &Rankings{
		Container: NewContainer("Rankings", RankingsState{Year: now.Year()}, reduceRankings),
		api:       api,
		teams:     teams,
		viewer:    viewer,
	}
}

// Load fetches the standings for year; year <= 0 keeps the current season.
func (r *Rankings) Load(ctx context.Context, year int) RankingsState {
	if year > 0 {
		r.Dispatch(SelectSeason{Year: year})
	}
	year = r.State().Year
	t := r.Begin("rankings", FetchStart{})
	list, err := r.api.List(ctx, year)
	if err != nil {
		logger.Warn.Printf("[Rankings.Load] season %d: %v", year, err)
		r.Resolve(t, FetchError{Message: messageFor(err, "Failed to load the standings.", nil)})
		return r.State()
	}
	r.Resolve(t, FetchSuccess[[]models.TeamRanking]{Payload: list})
	return r.State()
}

// LoadTeams fetches the team list for the admin form.
func (r *Rankings) LoadTeams(ctx context.Context) RankingsState {
	t := r.Begin("teams")
	teams, err := r.teams.List(ctx)
	if err != nil {
		r.Resolve(t, SetMessage{Message: "Failed to load the team list."})
		return r.State()
	}
	r.Resolve(t, TeamsLoaded{Teams: teams})
	return r.State()
}

func (r *Rankings) replaceAll(ctx context.Context, op Op, call func(context.Context, int) ([]models.TeamRanking, error), done, failed string) RankingsState {
	if !r.viewer.IsAdmin() {
		return r.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	year := r.State().Year
	r.Dispatch(ActionStart{})
	list, err := call(ctx, year)
	if err != nil {
		logger.Error.Printf("[Rankings.%s] season %d: %v", op, year, err)
		return r.Dispatch(ActionDone{}, SetMessage{Message: messageFor(err, failed, nil)})
	}
	if RankingPolicies.For(op) == Replace {
		// Supersede any list fetch still in flight.
		t := r.Begin("rankings")
		r.Resolve(t, FetchSuccess[[]models.TeamRanking]{Payload: list})
	} else {
		r.Load(ctx, year)
	}
	return r.Dispatch(ActionDone{}, SetMessage{Message: done})
}

// Crawl replaces the standings with the league website's table. Admin only.
func (r *Rankings) Crawl(ctx context.Context) RankingsState {
	return r.replaceAll(ctx, OpCrawl, r.api.Crawl, "The standings were updated from the league website.", "Failed to crawl the standings.")
}

// Calculate replaces the standings with the server's recomputation from game
// results. Admin only.
func (r *Rankings) Calculate(ctx context.Context) RankingsState {
	return r.replaceAll(ctx, OpCalculate, r.api.Calculate, "The standings were recalculated.", "Failed to recalculate the standings.")
}

func (r *Rankings) sync(ctx context.Context, op Op, saved models.TeamRanking) {
	policy := RankingPolicies.For(op)
	if policy.splices() {
		r.Dispatch(RankingSpliced{Ranking: saved})
	}
	if policy.refetches() {
		r.Load(ctx, 0)
	}
}

func validateRanking(rk models.TeamRanking) string {
	switch {
	case rk.Team == nil || rk.Team.ID == 0:
		return "Please choose a team."
	case rk.SeasonYear <= 0:
		return "Please enter a valid season."
	case rk.Wins < 0 || rk.Losses < 0 || rk.Draws < 0:
		return "Wins, losses and draws cannot be negative."
	case rk.CurrentRank <= 0:
		return "Rank must be a positive number."
	case rk.GamesBehind < 0:
		return "Games behind cannot be negative."
	}
	return ""
}

// Create adds a ranking row. winRate is recomputed from wins and losses.
func (r *Rankings) Create(ctx context.Context, rk models.TeamRanking) RankingsState {
	if !r.viewer.IsAdmin() {
		return r.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	if rk.SeasonYear == 0 {
		rk.SeasonYear = r.State().Year
	}
	if msg := validateRanking(rk); msg != "" {
		return r.Dispatch(SetMessage{Message: msg})
	}
	rk.ID = 0
	rk.WinRate = derive.WinRate(rk.Wins, rk.Losses)
	saved, err := r.api.Create(ctx, rk)
	if err != nil {
		logger.Warn.Printf("[Rankings.Create] %v", err)
		return r.Dispatch(SetMessage{Message: messageFor(err, "Failed to add the ranking.", nil)})
	}
	r.sync(ctx, OpCreate, *saved)
	return r.Dispatch(SetMessage{Message: "The ranking was added."})
}

// Update edits a ranking row. winRate is recomputed from wins and losses.
func (r *Rankings) Update(ctx context.Context, id int64, rk models.TeamRanking) RankingsState {
	if !r.viewer.IsAdmin() {
		return r.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	if msg := validateRanking(rk); msg != "" {
		return r.Dispatch(SetMessage{Message: msg})
	}
	rk.ID = id
	rk.WinRate = derive.WinRate(rk.Wins, rk.Losses)
	saved, err := r.api.Update(ctx, id, rk)
	if err != nil {
		logger.Warn.Printf("[Rankings.Update] ranking %d: %v", id, err)
		return r.Dispatch(SetMessage{Message: messageFor(err, "Failed to update the ranking.", nil)})
	}
	r.sync(ctx, OpUpdate, *saved)
	return r.Dispatch(SetMessage{Message: "The ranking was updated."})
}

// RequestDelete opens the delete confirmation for id.
func (r *Rankings) RequestDelete(id int64) RankingsState {
	if !r.viewer.IsAdmin() {
		return r.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	return r.Dispatch(OpenConfirm[int64]{Target: id, Prompt: "Delete this ranking?"})
}

// CancelDelete closes the confirmation.
func (r *Rankings) CancelDelete() RankingsState {
	return r.Dispatch(CloseConfirm{})
}

// ConfirmDelete deletes the pending ranking.
func (r *Rankings) ConfirmDelete(ctx context.Context) RankingsState {
	st := r.State()
	if !st.Delete.Open {
		return st
	}
	r.Dispatch(CloseConfirm{})
	if !r.viewer.IsAdmin() {
		return r.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	id := st.Delete.Target
	if err := r.api.Delete(ctx, id); err != nil {
		logger.Warn.Printf("[Rankings.ConfirmDelete] ranking %d: %v", id, err)
		return r.Dispatch(SetMessage{Message: messageFor(err, "Failed to delete the ranking.", nil)})
	}
	policy := RankingPolicies.For(OpDelete)
	if policy.splices() {
		r.Dispatch(RankingRemoved{ID: id})
	}
	if policy.refetches() {
		r.Load(ctx, 0)
	}
	return r.Dispatch(SetMessage{Message: "The ranking was deleted."})
}
