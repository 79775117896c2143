// Package services: services/visitor_service.go
package services

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-ballpark/api"
	"go-ballpark/logger"
	"go-ballpark/session"
	"go-ballpark/viewstate"
)

// Visitor is one browser: its gateway client, session store and screens.
type Visitor struct {
	ID        string
	Client    *api.Client
	Session   *session.Store
	Workspace *viewstate.Workspace

	mu       sync.Mutex
	lastSeen time.Time
	checked  bool
}

// NeedsCheck reports, once, that the session status has not been asked for.
func (v *Visitor) NeedsCheck() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.checked {
		return false
	}
	v.checked = true
	return true
}

// LastSeen returns the time of the visitor's latest request.
func (v *Visitor) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

// VisitorServiceInterface is what the middleware and controllers need.
type VisitorServiceInterface interface {
	Attach(id string) (*Visitor, error)
	Get(id string) (*Visitor, bool)
	Remove(id string)
	Count() int
}

// VisitorConfig configures every visitor's gateway client and screens.
type VisitorConfig struct {
	APIBaseURL string
	APIToken   string
	// HTTPClient is cloned per visitor; each clone gets its own cookie jar.
	HTTPClient *http.Client
	Observer   api.Observer
	Workspace  viewstate.WorkspaceConfig
}

// VisitorService keeps a visitor per cookie id and evicts idle ones.
type VisitorService struct {
	mu       sync.Mutex
	visitors map[string]*Visitor
	cfg      VisitorConfig
	notifier viewstate.Notifier
	now      func() time.Time
}

// NewVisitorService creates an empty registry.
func NewVisitorService(cfg VisitorConfig, notifier viewstate.Notifier) *VisitorService {
	return &VisitorService{
		visitors: make(map[string]*Visitor),
		cfg:      cfg,
		notifier: notifier,
		now:      time.Now,
	}
}

// Attach returns the visitor for id, creating one with a fresh id when id is
// empty or unknown.
func (s *VisitorService) Attach(id string) (*Visitor, error) {
	now := s.now()
	s.mu.Lock()
	if v, ok := s.visitors[id]; ok && id != "" {
		s.mu.Unlock()
		v.touch(now)
		return v, nil
	}
	s.mu.Unlock()

	v, err := s.newVisitor(uuid.NewString())
	if err != nil {
		logger.Error.Printf("[VisitorService.Attach] creating visitor: %v", err)
		return nil, err
	}
	v.touch(now)

	s.mu.Lock()
	s.visitors[v.ID] = v
	count := len(s.visitors)
	s.mu.Unlock()
	logger.Info.Printf("[VisitorService.Attach] new visitor %s (active=%d)", v.ID, count)
	return v, nil
}

func (s *VisitorService) newVisitor(id string) (*Visitor, error) {
	opts := []api.Option{}
	if s.cfg.HTTPClient != nil {
		clone := *s.cfg.HTTPClient
		clone.Jar = nil
		opts = append(opts, api.WithHTTPClient(&clone))
	}
	if s.cfg.Observer != nil {
		opts = append(opts, api.WithObserver(s.cfg.Observer))
	}
	if s.cfg.APIToken != "" {
		opts = append(opts, api.WithToken(s.cfg.APIToken))
	}
	client, err := api.New(s.cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(client.Auth)
	return &Visitor{
		ID:        id,
		Client:    client,
		Session:   store,
		Workspace: viewstate.NewWorkspace(id, client, store, s.cfg.Workspace, s.notifier),
	}, nil
}

// Get returns the visitor for id without creating one.
func (s *VisitorService) Get(id string) (*Visitor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visitors[id]
	return v, ok
}

// Remove drops the visitor and stops its pending work.
func (s *VisitorService) Remove(id string) {
	s.mu.Lock()
	v, ok := s.visitors[id]
	delete(s.visitors, id)
	s.mu.Unlock()
	if ok {
		v.Workspace.Close()
		logger.Info.Printf("[VisitorService.Remove] visitor %s removed", id)
	}
}

// Count returns the number of live visitors.
func (s *VisitorService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// CleanupInactive removes visitors idle for longer than timeout and returns
// how many were removed.
func (s *VisitorService) CleanupInactive(timeout time.Duration) int {
	now := s.now()
	var stale []string
	s.mu.Lock()
	for id, v := range s.visitors {
		if now.Sub(v.LastSeen()) > timeout {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		logger.Info.Printf("[VisitorService.CleanupInactive] removing idle visitor=%s (timeout=%v)", id, timeout)
		s.Remove(id)
	}
	return len(stale)
}

// StartSweeper runs CleanupInactive every interval until stop is closed.
func (s *VisitorService) StartSweeper(interval, timeout time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CleanupInactive(timeout)
			case <-stop:
				return
			}
		}
	}()
}
