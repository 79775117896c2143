// file: viewstate/teams.go
package viewstate

import (
	"context"
	"net/http"
	"strings"

	"go-ballpark/logger"
	"go-ballpark/models"
)

// TeamAdminAPI is the slice of the gateway the team admin table uses.
type TeamAdminAPI interface {
	List(ctx context.Context) ([]models.Team, error)
	Create(ctx context.Context, team models.Team) (*models.Team, error)
	Update(ctx context.Context, id int64, team models.Team) (*models.Team, error)
	Delete(ctx context.Context, id int64) error
}

// TeamsState is the team admin table.
type TeamsState struct {
	Status
	Teams  []models.Team
	Delete Pending[int64]
}

// Team actions.
type (
	TeamSpliced struct{ Team models.Team }
	TeamRemoved struct{ ID int64 }
)

func (TeamSpliced) isAction() {}
func (TeamRemoved) isAction() {}

func teamID(t models.Team) int64 { return t.ID }

func reduceTeams(s TeamsState, a Action) TeamsState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Delete, a); ok {
		s.Delete = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[[]models.Team]:
		s.Loading = false
		s.Error = ""
		s.Teams = a.Payload
	case TeamSpliced:
		s.Teams = spliceByID(s.Teams, a.Team, teamID)
	case TeamRemoved:
		s.Teams = removeByID(s.Teams, a.ID, teamID)
	default:
		return unhandled("Teams", s, a)
	}
	return s
}

// Teams drives the team admin table.
type Teams struct {
	*Container[TeamsState]
	api    TeamAdminAPI
	viewer Viewer
}

// NewTeams creates the team admin container.
func NewTeams(api TeamAdminAPI, viewer Viewer) *Teams {
	return &Teams{
		Container: NewContainer("Teams", TeamsState{}, reduceTeams),
		api:       api,
		viewer:    viewer,
	}
}

// Load fetches every team.
func (t *Teams) Load(ctx context.Context) TeamsState {
	tk := t.Begin("teams", FetchStart{})
	teams, err := t.api.List(ctx)
	if err != nil {
		logger.Warn.Printf("[Teams.Load] %v", err)
		t.Resolve(tk, FetchError{Message: messageFor(err, "Failed to load the team list.", nil)})
		return t.State()
	}
	t.Resolve(tk, FetchSuccess[[]models.Team]{Payload: teams})
	return t.State()
}

func (t *Teams) sync(ctx context.Context, op Op, action Action) {
	policy := TeamPolicies.For(op)
	if policy.splices() {
		t.Dispatch(action)
	}
	if policy.refetches() {
		t.Load(ctx)
	}
}

// Save creates the team when id is 0, otherwise updates it.
func (t *Teams) Save(ctx context.Context, id int64, team models.Team) TeamsState {
	if !t.viewer.IsAdmin() {
		return t.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	team.Name = strings.TrimSpace(team.Name)
	team.LogoURL = strings.TrimSpace(team.LogoURL)
	if team.Name == "" {
		return t.Dispatch(SetMessage{Message: "Please enter the team name."})
	}

	var (
		saved *models.Team
		err   error
		op    = OpCreate
	)
	if id == 0 {
		saved, err = t.api.Create(ctx, team)
	} else {
		op = OpUpdate
		team.ID = id
		saved, err = t.api.Update(ctx, id, team)
	}
	if err != nil {
		logger.Warn.Printf("[Teams.Save] %s %q: %v", op, team.Name, err)
		return t.Dispatch(SetMessage{Message: messageFor(err, "Failed to save the team.", nil)})
	}
	t.sync(ctx, op, TeamSpliced{Team: *saved})
	return t.Dispatch(SetMessage{Message: "The team was saved."})
}

// RequestDelete opens the delete confirmation for id.
func (t *Teams) RequestDelete(id int64) TeamsState {
	if !t.viewer.IsAdmin() {
		return t.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	return t.Dispatch(OpenConfirm[int64]{Target: id, Prompt: "Delete this team?"})
}

// CancelDelete closes the confirmation.
func (t *Teams) CancelDelete() TeamsState {
	return t.Dispatch(CloseConfirm{})
}

// ConfirmDelete deletes the pending team. A team with games cannot be
// deleted.
func (t *Teams) ConfirmDelete(ctx context.Context) TeamsState {
	st := t.State()
	if !st.Delete.Open {
		return st
	}
	t.Dispatch(CloseConfirm{})
	if !t.viewer.IsAdmin() {
		return t.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	id := st.Delete.Target
	if err := t.api.Delete(ctx, id); err != nil {
		logger.Warn.Printf("[Teams.ConfirmDelete] team %d: %v", id, err)
		msg := messageFor(err, "Failed to delete the team.", map[int]string{
			http.StatusConflict: "This team has scheduled games and cannot be deleted.",
		})
		return t.Dispatch(SetMessage{Message: msg})
	}
	t.sync(ctx, OpDelete, TeamRemoved{ID: id})
	return t.Dispatch(SetMessage{Message: "The team was deleted."})
}
