// file: viewstate/workspace.go
package viewstate

import (
	"context"
	"sync"
	"time"

	"go-ballpark/api"
	"go-ballpark/models"
	"go-ballpark/session"
)

// Push events.
const (
	EventCommentsChanged = "commentsChanged"
	EventFieldChecked    = "fieldChecked"
)

// Notifier pushes container changes to connected browsers.
type Notifier interface {
	NotifyVisitor(visitorID, event string, payload any)
	NotifyGame(gameID int64, event string, payload any)
}

// WorkspaceConfig holds the per-visitor settings shared by every container.
type WorkspaceConfig struct {
	CommentsPageSize int
	DebounceDelay    time.Duration
	Location         *time.Location
	Now              Clock
}

// Workspace is one visitor's gateway client, session and screens. Game
// screens are created on first use, one per game id.
type Workspace struct {
	ID      string
	Client  *api.Client
	Session *session.Store

	GameList *GameList
	Rankings *Rankings
	Teams    *Teams
	Login    *Login
	Register *Register

	cfg      WorkspaceConfig
	notifier Notifier
	debounce *Debouncer

	mu       sync.Mutex
	members  *Members
	profile  *Profile
	details  map[int64]*GameDetail
	comments map[int64]*Comments
}

// NewWorkspace wires every screen to client and store.
func NewWorkspace(id string, client *api.Client, store *session.Store, cfg WorkspaceConfig, notifier Notifier) *Workspace {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	w := &Workspace{
		ID:       id,
		Client:   client,
		Session:  store,
		cfg:      cfg,
		notifier: notifier,
		debounce: NewDebouncer(context.Background(), cfg.DebounceDelay),
		details:  make(map[int64]*GameDetail),
		comments: make(map[int64]*Comments),
	}
	now := cfg.Now()
	w.GameList = NewGameList(client.Games, client.Teams, store, now)
	w.Rankings = NewRankings(client.Rankings, client.Teams, store, now)
	w.Teams = NewTeams(client.Teams, store)
	w.Login = NewLogin(store)
	w.Register = NewRegister(client.Auth, w.debounce)
	w.Register.Watch(w.pushChecks)
	return w
}

func (w *Workspace) pushChecks(st RegisterState) {
	if w.notifier == nil {
		return
	}
	for field, fc := range st.Checks {
		if !fc.Checking {
			w.notifier.NotifyVisitor(w.ID, EventFieldChecked, map[string]any{
				"field":     field,
				"value":     fc.Value,
				"available": fc.Available,
				"error":     fc.Error,
			})
		}
	}
}

// Members is the member admin screen.
func (w *Workspace) Members() *Members {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.members == nil {
		w.members = NewMembers(w.Client.AdminMembers, w.Session, w.cfg.Now, w.cfg.Location)
	}
	return w.members
}

// Profile is the signed-in member's profile screen.
func (w *Workspace) Profile() *Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.profile == nil {
		w.profile = NewProfile(w.Client.Members, w.Session)
	}
	return w.profile
}

// GameDetail returns the detail screen of gameID.
func (w *Workspace) GameDetail(gameID int64) *GameDetail {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.details[gameID]
	if !ok {
		d = NewGameDetail(gameID, w.Client.Games, w.Client.Lineups, w.Client.Teams, w.Session)
		w.details[gameID] = d
	}
	return d
}

// Comments returns the comment thread of gameID.
func (w *Workspace) Comments(gameID int64) *Comments {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.comments[gameID]
	if !ok {
		c = NewComments(gameID, w.cfg.CommentsPageSize, w.Client.Comments, w.Session)
		if w.notifier != nil {
			notifier := w.notifier
			c.OnChange(func(counts models.PredictionCounts) {
				notifier.NotifyGame(gameID, EventCommentsChanged, counts)
			})
		}
		w.comments[gameID] = c
	}
	return c
}

// ForgetUser drops the screens that hold one member's data. Called after
// logout and account deletion.
func (w *Workspace) ForgetUser() {
	w.mu.Lock()
	w.members = nil
	w.profile = nil
	w.mu.Unlock()
}

// Close stops pending availability checks.
func (w *Workspace) Close() {
	w.debounce.Stop()
}
