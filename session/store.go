// Package session holds one visitor's authentication state.
// file: session/store.go
package session

import (
	"context"
	"errors"
	"sync"

	"go-ballpark/logger"
	"go-ballpark/models"
)

// Phase is the store's position in INIT -> AUTHENTICATED | ANONYMOUS.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// ErrNoIdentity is returned when login succeeds at the HTTP level but the
// response names no user.
var ErrNoIdentity = errors.New("login response carried no username")

// State is a snapshot of the store.
type State struct {
	Phase   Phase
	User    *models.SessionUser
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil
}

// AuthAPI is the slice of the gateway the store needs.
type AuthAPI interface {
	Status(ctx context.Context) (*models.SessionUser, error)
	Login(ctx context.Context, username, password string) (*models.SessionUser, error)
	Logout(ctx context.Context) error
}

// Store is mutated only by Check, Login, Logout and Reset.
type Store struct {
	mu    sync.RWMutex
	api   AuthAPI
	state State
}

// NewStore returns a store in the INIT phase.
func NewStore(api AuthAPI) *Store {
	return &Store{api: api, state: State{Phase: PhaseInit, Loading: true}}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// User returns the signed-in user.
func (s *Store) User() (models.SessionUser, bool) {
	st := s.State()
	if !st.Authenticated() {
		return models.SessionUser{}, false
	}
	return *st.User, true
}

// IsAdmin reports whether the signed-in user holds the admin role.
func (s *Store) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin()
}

// Check asks the backend who is signed in. Any failure or a response
// without a username leaves the store anonymous.
func (s *Store) Check(ctx context.Context) State {
	user, err := s.api.Status(ctx)
	if err != nil || user == nil || user.Username == "" {
		if err != nil {
			logger.Debug.Printf("[session.Check] status check failed: %v", err)
		}
		s.set(State{Phase: PhaseAnonymous})
		return s.State()
	}
	s.set(State{Phase: PhaseAuthenticated, User: user})
	return s.State()
}

// Login authenticates and returns the user. On any failure the store becomes
// anonymous and the error is returned for messaging.
func (s *Store) Login(ctx context.Context, username, password string) (*models.SessionUser, error) {
	user, err := s.api.Login(ctx, username, password)
	if err == nil && (user == nil || user.Username == "") {
		err = ErrNoIdentity
	}
	if err != nil {
		s.set(State{Phase: PhaseAnonymous})
		return nil, err
	}
	s.set(State{Phase: PhaseAuthenticated, User: user})
	logger.Info.Printf("[session.Login] %s signed in (role=%s)", user.Username, user.Role)
	u := *user
	return &u, nil
}

// Logout ends the backend session. On success the store becomes anonymous.
// On failure the state is left alone and the caller decides whether to Reset.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		return err
	}
	s.Reset()
	return nil
}

// Reset forces the anonymous phase without contacting the backend.
func (s *Store) Reset() {
	s.set(State{Phase: PhaseAnonymous})
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
