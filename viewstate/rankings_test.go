package viewstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-ballpark/models"
)

var (
	teamA = &models.Team{ID: 1, Name: "A"}
	teamB = &models.Team{ID: 2, Name: "B"}
	teamC = &models.Team{ID: 3, Name: "C"}
)

func rankNames(rs []models.TeamRanking) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.TeamName()
	}
	return out
}

func newRankings(v Viewer) (*Rankings, *mockRankings) {
	api := &mockRankings{}
	return NewRankings(api, &mockTeams{}, v, time.Date(2025, 5, 1, 0, 0, 0, 0, seoul)), api
}

func TestRankings_LoadSorts(t *testing.T) {
	r, api := newRankings(userViewer)
	api.On("List", anyCtx, 2025).Return([]models.TeamRanking{
		{ID: 10, Team: teamA, CurrentRank: 2},
		{ID: 11, Team: teamB, CurrentRank: 1},
	}, nil)

	st := r.Load(ctx, 0)
	assert.Equal(t, []string{"B", "A"}, rankNames(st.Rankings))
}

func TestRankings_CreateKeepsRankOrder(t *testing.T) {
	r, api := newRankings(adminViewer)
	initial := []models.TeamRanking{
		{ID: 10, Team: teamA, CurrentRank: 2},
		{ID: 11, Team: teamB, CurrentRank: 1},
	}
	api.On("List", anyCtx, 2025).Return(initial, nil).Once()
	r.Load(ctx, 0)

	in := models.TeamRanking{Team: teamC, SeasonYear: 2025, Wins: 3, Losses: 1, CurrentRank: 1}
	withRate := in
	withRate.WinRate = 0.75
	created := withRate
	created.ID = 12
	api.On("Create", anyCtx, withRate).Return(&created, nil)

	// Capture the spliced state before the refetch lands.
	var spliced []string
	r.Watch(func(s RankingsState) {
		if spliced == nil && len(s.Rankings) == 3 {
			spliced = rankNames(s.Rankings)
		}
	})
	api.On("List", anyCtx, 2025).Return(append(initial, created), nil)

	st := r.Create(ctx, in)
	assert.Equal(t, []string{"B", "C", "A"}, spliced)
	assert.Equal(t, []string{"B", "C", "A"}, rankNames(st.Rankings))
	api.AssertNumberOfCalls(t, "List", 2)
}

func TestRankings_CreateValidates(t *testing.T) {
	r, api := newRankings(adminViewer)
	st := r.Create(ctx, models.TeamRanking{SeasonYear: 2025, CurrentRank: 1})
	assert.Equal(t, "Please choose a team.", st.Message)

	st = r.Create(ctx, models.TeamRanking{Team: teamA, Wins: -1, CurrentRank: 1})
	assert.Equal(t, "Wins, losses and draws cannot be negative.", st.Message)
	api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRankings_UpdateRecomputesWinRate(t *testing.T) {
	r, api := newRankings(adminViewer)
	in := models.TeamRanking{Team: teamA, SeasonYear: 2025, Wins: 0, Losses: 0, Draws: 4, WinRate: 0.9, CurrentRank: 1}
	want := in
	want.ID = 10
	want.WinRate = 0
	api.On("Update", anyCtx, int64(10), want).Return(&want, nil)
	api.On("List", anyCtx, 2025).Return([]models.TeamRanking{want}, nil)

	st := r.Update(ctx, 10, in)
	assert.Equal(t, "The ranking was updated.", st.Message)
	api.AssertCalled(t, "Update", anyCtx, int64(10), want)
}

func TestRankings_CrawlReplacesList(t *testing.T) {
	r, api := newRankings(adminViewer)
	api.On("Crawl", anyCtx, 2025).Return([]models.TeamRanking{
		{ID: 1, Team: teamC, CurrentRank: 3},
		{ID: 2, Team: teamA, CurrentRank: 1},
	}, nil)

	st := r.Crawl(ctx)
	assert.Equal(t, []string{"A", "C"}, rankNames(st.Rankings))
	assert.False(t, st.Busy)
	api.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRankings_CrawlAdminOnly(t *testing.T) {
	r, api := newRankings(userViewer)
	st := r.Calculate(ctx)
	assert.Equal(t, MsgAdminOnly, st.Message)
	api.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
}

func TestRankings_DeleteSplices(t *testing.T) {
	r, api := newRankings(adminViewer)
	api.On("List", anyCtx, 2025).Return([]models.TeamRanking{
		{ID: 10, Team: teamA, CurrentRank: 1},
		{ID: 11, Team: teamB, CurrentRank: 2},
	}, nil)
	api.On("Delete", anyCtx, int64(10)).Return(nil)
	r.Load(ctx, 0)

	r.RequestDelete(10)
	st := r.ConfirmDelete(ctx)
	assert.Equal(t, []string{"B"}, rankNames(st.Rankings))
	api.AssertNumberOfCalls(t, "List", 1)
}
