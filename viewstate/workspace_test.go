package viewstate

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ballpark/api"
	"go-ballpark/models"
	"go-ballpark/session"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyVisitor(visitorID, event string, payload any) {
	n.mu.Lock()
	n.events = append(n.events, "visitor:"+visitorID+":"+event)
	n.mu.Unlock()
}

func (n *recordingNotifier) NotifyGame(gameID int64, event string, payload any) {
	n.mu.Lock()
	n.events = append(n.events, "game:"+event)
	n.mu.Unlock()
}

func (n *recordingNotifier) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func newTestWorkspace(t *testing.T, handler http.Handler, notifier Notifier) *Workspace {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	store := session.NewStore(client.Auth)
	ws := NewWorkspace("v1", client, store, WorkspaceConfig{
		CommentsPageSize: 5,
		DebounceDelay:    5 * time.Millisecond,
		Location:         seoul,
	}, notifier)
	t.Cleanup(ws.Close)
	return ws
}

func TestWorkspace_GameScreensAreCachedPerGame(t *testing.T) {
	ws := newTestWorkspace(t, http.NotFoundHandler(), nil)

	assert.Same(t, ws.GameDetail(1), ws.GameDetail(1))
	assert.NotSame(t, ws.GameDetail(1), ws.GameDetail(2))
	assert.Same(t, ws.Comments(3), ws.Comments(3))
	assert.Equal(t, 5, ws.Comments(3).State().Size)
}

func TestWorkspace_ForgetUserDropsPrivateScreens(t *testing.T) {
	ws := newTestWorkspace(t, http.NotFoundHandler(), nil)
	p, m := ws.Profile(), ws.Members()
	ws.ForgetUser()
	assert.NotSame(t, p, ws.Profile())
	assert.NotSame(t, m, ws.Members())
}

func TestWorkspace_CommentChangesArePushed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/games/4/comments/prediction-counts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Bears":2}`))
	})
	mux.HandleFunc("/games/4/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[],"number":0,"totalElements":0}`))
	})
	n := &recordingNotifier{}
	ws := newTestWorkspace(t, mux, n)

	st := ws.Comments(4).Load(ctx, 0)
	assert.Equal(t, models.PredictionCounts{"Bears": 2}, st.Counts)
	assert.Contains(t, n.seen(), "game:"+EventCommentsChanged)
}

func TestWorkspace_AvailabilityIsPushed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/check-username", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`false`))
	})
	n := &recordingNotifier{}
	ws := newTestWorkspace(t, mux, n)

	ws.Register.Input(FieldUsername, "kimkim")
	assert.Eventually(t, func() bool {
		for _, e := range n.seen() {
			if e == "visitor:v1:"+EventFieldChecked {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	assert.True(t, ws.Register.State().Check(FieldUsername).Available)
}
