// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-ballpark/middleware"
	"go-ballpark/services"
	"go-ballpark/viewstate"
)

const (
	adminStatus = `{"username":"boss","role":"ADMIN","nickname":"Boss"}`
	fanStatus   = `{"username":"fan1","role":"USER","nickname":"Fan"}`
)

const gameJSON = `{"id":1,"gameDate":"2026-04-01T18:30:00","location":"Jamsil",
	"homeTeam":{"id":1,"name":"Bears"},"opponentTeam":{"id":2,"name":"Twins"},"status":"SCHEDULED"}`

// fakeBackend is an httptest REST backend recording the requests it served.
type fakeBackend struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

// newFakeBackend answers /auth/status with status, or 401 when status is empty.
func newFakeBackend(t *testing.T, status string) *fakeBackend {
	t.Helper()
	b := &fakeBackend{t: t, mux: http.NewServeMux(), bodies: make(map[string]string), hits: make(map[string]int)}
	b.mux.HandleFunc("GET /auth/status", func(w http.ResponseWriter, r *http.Request) {
		if status == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, status)
	})
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies[r.Method+" "+r.URL.Path] = string(body)
		b.hits[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// reply serves a fixed JSON body for pattern.
func (b *fakeBackend) reply(pattern string, code int, body string) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, code, body)
	})
}

// body returns what the backend received for "METHOD /path".
func (b *fakeBackend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

// calls counts the requests served for "METHOD /path".
func (b *fakeBackend) calls(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

// decoded unmarshals the recorded body for key.
func (b *fakeBackend) decoded(key string) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(b.t, json.Unmarshal([]byte(b.body(key)), &out))
	return out
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// newTestVisitor creates a visitor bound to b and resolves its session.
func newTestVisitor(t *testing.T, b *fakeBackend) *services.Visitor {
	t.Helper()
	svc := services.NewVisitorService(services.VisitorConfig{
		APIBaseURL: b.srv.URL,
		Workspace: viewstate.WorkspaceConfig{
			CommentsPageSize: 10,
			DebounceDelay:    50 * time.Millisecond,
			Location:         time.UTC,
		},
	}, nil)
	v, err := svc.Attach("")
	require.NoError(t, err)
	v.Session.Check(context.Background())
	return v
}

// setupTestRouter creates a Gin engine with sessions, the given visitor
// attached to every request, and minimal HTML templates.
func setupTestRouter(t *testing.T, v *services.Visitor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	router.Use(func(c *gin.Context) {
		if v != nil {
			middleware.SetVisitor(c, v)
		}
		c.Next()
	})

	Location = time.UTC
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.SetFuncMap(TemplateFuncs(time.UTC))
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes minimal templates exposing the values tests
// assert on.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"login.html":    `<html><body><p class="flash">{{.Login.Message}}</p></body></html>`,
		"register.html": `<html><body><p class="flash">{{.Register.Message}}</p><p class="user">{{.Username.Value}}</p></body></html>`,
		"games.html": `<html><body><p class="flash">{{.Games.Message}}</p><h2>{{.Games.Year}}-{{printf "%02d" .Games.Month}}</h2>
{{with .Highlights.Next}}<p class="next">{{.ID}}</p>{{end}}
{{range .Calendar}}{{range .}}{{range .Games}}<a class="game" href="/games/{{.ID}}">{{.ID}}</a>{{end}}{{end}}{{end}}</body></html>`,
		"game.html": `<html><body><p class="flash">{{.Detail.Message}}</p><p class="error">{{.Detail.Error}}</p>
{{with .Detail.Game}}<h1>{{.HomeTeamName}} vs {{.OpponentTeamName}}</h1>{{end}}
{{if .Detail.Editing}}<form id="edit-game"></form>{{end}}
{{if .Detail.Delete.Open}}<div id="delete-game"></div>{{end}}
{{range .Detail.Home.Draft}}<li class="home-draft">{{.PlayerName}}|{{with .OrderNumber}}{{.}}{{end}}</li>{{end}}
{{range .Detail.Home.Players}}<li class="home-player">{{.PlayerName}}</li>{{end}}
<p class="comment-flash">{{.Comments.Message}}</p>
{{range .Visible}}<li class="comment">{{.CommentText}}|{{badge . $.Comments.HomeTeam $.Comments.AwayTeam}}</li>{{end}}
<p class="split">{{percent .Split.HomePercent}}</p></body></html>`,
		"rankings.html":      `<html><body><p class="flash">{{.Rankings.Message}}</p>{{range .Rankings.Rankings}}<tr class="rank"><td>{{.TeamName}}</td><td>{{winRate .WinRate}}</td></tr>{{end}}</body></html>`,
		"admin_teams.html":   `<html><body><p class="flash">{{.Teams.Message}}</p>{{range .Teams.Teams}}<li class="team">{{.Name}}</li>{{end}}</body></html>`,
		"admin_members.html": `<html><body><p class="flash">{{.Members.Message}}</p>{{if .Members.Ban.Open}}<div id="ban"></div>{{end}}{{range .Members.Members}}<li class="member">{{.Username}}</li>{{end}}</body></html>`,
		"profile.html":       `<html><body><p class="flash">{{.Profile.Message}}</p>{{with .Profile.Member}}<p class="nick">{{.Nickname}}</p>{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// get performs a GET and returns the recorder.
func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// post submits form values and returns the recorder.
func post(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doc parses a rendered page.
func doc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return d
}
