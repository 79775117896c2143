package viewstate

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"go-ballpark/api"
	"go-ballpark/models"
)

var (
	ctx    = context.Background()
	anyCtx = mock.Anything
	seoul  = mustLoad("Asia/Seoul")
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 9*60*60)
	}
	return loc
}

func serverErr(status int, msg string) error {
	return &api.Error{Kind: api.KindServer, Method: "GET", Path: "/test", Status: status, Message: msg}
}

func networkErr() error {
	return &api.Error{Kind: api.KindNetwork, Method: "GET", Path: "/test", Err: context.DeadlineExceeded}
}

type fakeViewer struct {
	user  *models.SessionUser
	admin bool
}

func (v fakeViewer) User() (models.SessionUser, bool) {
	if v.user == nil {
		return models.SessionUser{}, false
	}
	return *v.user, true
}

func (v fakeViewer) IsAdmin() bool { return v.admin }

var (
	adminViewer = fakeViewer{user: &models.SessionUser{Username: "admin", Role: models.RoleAdmin}, admin: true}
	userViewer  = fakeViewer{user: &models.SessionUser{Username: "kim", Role: models.RoleUser}}
	anonViewer  = fakeViewer{}
)

type mockGames struct{ mock.Mock }

func (m *mockGames) List(ctx context.Context) ([]models.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]models.Game)
	return games, args.Error(1)
}

func (m *mockGames) Get(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*models.Game)
	return g, args.Error(1)
}

func (m *mockGames) Create(ctx context.Context, game models.Game) (*models.Game, error) {
	args := m.Called(ctx, game)
	g, _ := args.Get(0).(*models.Game)
	return g, args.Error(1)
}

func (m *mockGames) Update(ctx context.Context, id int64, game models.Game) (*models.Game, error) {
	args := m.Called(ctx, id, game)
	g, _ := args.Get(0).(*models.Game)
	return g, args.Error(1)
}

func (m *mockGames) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGames) Crawl(ctx context.Context, seasonYear, month int) error {
	return m.Called(ctx, seasonYear, month).Error(0)
}

type mockTeams struct{ mock.Mock }

func (m *mockTeams) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *mockTeams) Create(ctx context.Context, team models.Team) (*models.Team, error) {
	args := m.Called(ctx, team)
	t, _ := args.Get(0).(*models.Team)
	return t, args.Error(1)
}

func (m *mockTeams) Update(ctx context.Context, id int64, team models.Team) (*models.Team, error) {
	args := m.Called(ctx, id, team)
	t, _ := args.Get(0).(*models.Team)
	return t, args.Error(1)
}

func (m *mockTeams) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockLineups struct{ mock.Mock }

func (m *mockLineups) Get(ctx context.Context, gameID int64) (*models.LineupResponse, error) {
	args := m.Called(ctx, gameID)
	r, _ := args.Get(0).(*models.LineupResponse)
	return r, args.Error(1)
}

func (m *mockLineups) Save(ctx context.Context, gameID int64, lineup models.Lineup) (*models.Lineup, error) {
	args := m.Called(ctx, gameID, lineup)
	l, _ := args.Get(0).(*models.Lineup)
	return l, args.Error(1)
}

func (m *mockLineups) Crawl(ctx context.Context, gameID int64) error {
	return m.Called(ctx, gameID).Error(0)
}

type mockComments struct{ mock.Mock }

func (m *mockComments) Add(ctx context.Context, gameID int64, req models.CommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, gameID, req)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockComments) List(ctx context.Context, gameID int64, q models.PageQuery) (*models.Page[models.Comment], error) {
	args := m.Called(ctx, gameID, q)
	p, _ := args.Get(0).(*models.Page[models.Comment])
	return p, args.Error(1)
}

func (m *mockComments) PredictionCounts(ctx context.Context, gameID int64) (models.PredictionCounts, error) {
	args := m.Called(ctx, gameID)
	c, _ := args.Get(0).(models.PredictionCounts)
	return c, args.Error(1)
}

func (m *mockComments) Update(ctx context.Context, gameID, commentID int64, req models.CommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, gameID, commentID, req)
	c, _ := args.Get(0).(*models.Comment)
	return c, args.Error(1)
}

func (m *mockComments) Delete(ctx context.Context, gameID, commentID int64) error {
	return m.Called(ctx, gameID, commentID).Error(0)
}

type mockRankings struct{ mock.Mock }

func (m *mockRankings) List(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	args := m.Called(ctx, seasonYear)
	r, _ := args.Get(0).([]models.TeamRanking)
	return r, args.Error(1)
}

func (m *mockRankings) Calculate(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	args := m.Called(ctx, seasonYear)
	r, _ := args.Get(0).([]models.TeamRanking)
	return r, args.Error(1)
}

func (m *mockRankings) Crawl(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	args := m.Called(ctx, seasonYear)
	r, _ := args.Get(0).([]models.TeamRanking)
	return r, args.Error(1)
}

func (m *mockRankings) Create(ctx context.Context, ranking models.TeamRanking) (*models.TeamRanking, error) {
	args := m.Called(ctx, ranking)
	r, _ := args.Get(0).(*models.TeamRanking)
	return r, args.Error(1)
}

func (m *mockRankings) Update(ctx context.Context, id int64, ranking models.TeamRanking) (*models.TeamRanking, error) {
	args := m.Called(ctx, id, ranking)
	r, _ := args.Get(0).(*models.TeamRanking)
	return r, args.Error(1)
}

func (m *mockRankings) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMembers struct{ mock.Mock }

func (m *mockMembers) List(ctx context.Context) ([]models.Member, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Member)
	return r, args.Error(1)
}

func (m *mockMembers) Update(ctx context.Context, id int64, member models.Member) (*models.Member, error) {
	args := m.Called(ctx, id, member)
	r, _ := args.Get(0).(*models.Member)
	return r, args.Error(1)
}

func (m *mockMembers) BanPermanently(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockMembers) BanUntil(ctx context.Context, username string, until time.Time) error {
	return m.Called(ctx, username, until).Error(0)
}

func (m *mockMembers) Unban(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockMembers) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProfile struct{ mock.Mock }

func (m *mockProfile) Me(ctx context.Context) (*models.Member, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*models.Member)
	return r, args.Error(1)
}

func (m *mockProfile) Update(ctx context.Context, req models.MemberUpdateRequest) (*models.Member, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*models.Member)
	return r, args.Error(1)
}

func (m *mockProfile) ChangePassword(ctx context.Context, req models.PasswordChangeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockProfile) Delete(ctx context.Context, req models.MemberDeleteRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, username, password string) (*models.SessionUser, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*models.SessionUser)
	return u, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAuth) Reset() {
	m.Called()
}

type mockRegistration struct{ mock.Mock }

func (m *mockRegistration) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRegistration) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistration) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func intp(n int) *int { return &n }
