package viewstate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-ballpark/models"
)

var june = time.Date(2025, time.June, 15, 12, 0, 0, 0, seoul)

func TestGameList_Load(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("List", anyCtx).Return([]models.Game{{ID: 1}, {ID: 2}}, nil)
	teams.On("List", anyCtx).Return([]models.Team{{ID: 1, Name: "Bears"}}, nil)

	gl := NewGameList(games, teams, userViewer, june)
	st := gl.Load(ctx)

	assert.False(t, st.Loading)
	assert.Len(t, st.Games, 2)
	assert.Len(t, st.Teams, 1)
	assert.Equal(t, 2025, st.Year)
	assert.Equal(t, time.June, st.Month)
}

func TestGameList_LoadFailureBlocks(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("List", anyCtx).Return(nil, networkErr())

	st := NewGameList(games, teams, userViewer, june).Load(ctx)
	assert.Equal(t, MsgNetwork, st.Error)
	teams.AssertNotCalled(t, "List", mock.Anything)
}

func TestGameList_TeamFailureOnlyNotifies(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("List", anyCtx).Return([]models.Game{{ID: 1}}, nil)
	teams.On("List", anyCtx).Return(nil, errors.New("down"))

	st := NewGameList(games, teams, userViewer, june).Load(ctx)
	assert.Empty(t, st.Error)
	assert.Len(t, st.Games, 1)
	assert.Equal(t, "Failed to load the team list.", st.Message)
}

func TestGameList_SelectMonthRefetches(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("List", anyCtx).Return([]models.Game{}, nil)
	teams.On("List", anyCtx).Return([]models.Team{}, nil)

	gl := NewGameList(games, teams, userViewer, june)
	gl.Load(ctx)
	st := gl.SelectMonth(ctx, 2025, time.July)

	assert.Equal(t, time.July, st.Month)
	games.AssertNumberOfCalls(t, "List", 2)
}

func TestGameList_SelectMonthRejectsInvalid(t *testing.T) {
	games := &mockGames{}
	st := NewGameList(games, &mockTeams{}, userViewer, june).SelectMonth(ctx, 2025, 13)
	assert.Equal(t, "Please choose a valid year and month.", st.Message)
	assert.Equal(t, time.June, st.Month)
	games.AssertNotCalled(t, "List", mock.Anything)
}

func TestGameList_CrawlIsAdminOnly(t *testing.T) {
	games := &mockGames{}
	st := NewGameList(games, &mockTeams{}, userViewer, june).Crawl(ctx)
	assert.Equal(t, MsgAdminOnly, st.Message)
	games.AssertNotCalled(t, "Crawl", mock.Anything, mock.Anything, mock.Anything)
}

func TestGameList_CrawlRefetches(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("Crawl", anyCtx, 2025, 6).Return(nil)
	games.On("List", anyCtx).Return([]models.Game{{ID: 9}}, nil)
	teams.On("List", anyCtx).Return([]models.Team{}, nil)

	st := NewGameList(games, teams, adminViewer, june).Crawl(ctx)
	assert.False(t, st.Busy)
	assert.Len(t, st.Games, 1)
	assert.Equal(t, "The game schedule was updated.", st.Message)
}

func TestGameList_CrawlFailureKeepsList(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	games.On("List", anyCtx).Return([]models.Game{{ID: 1}}, nil).Once()
	teams.On("List", anyCtx).Return([]models.Team{}, nil)
	games.On("Crawl", anyCtx, 2025, 6).Return(serverErr(500, ""))

	gl := NewGameList(games, teams, adminViewer, june)
	gl.Load(ctx)
	st := gl.Crawl(ctx)

	assert.Len(t, st.Games, 1)
	assert.Empty(t, st.Error)
	assert.Equal(t, "Failed to update the game schedule.", st.Message)
	assert.False(t, st.Busy)
}

func TestGameList_Create(t *testing.T) {
	games, teams := &mockGames{}, &mockTeams{}
	in := models.Game{Location: "Jamsil", Status: models.StatusScheduled}
	games.On("Create", anyCtx, in).Return(&models.Game{ID: 42, Location: "Jamsil"}, nil)
	games.On("List", anyCtx).Return([]models.Game{{ID: 42}}, nil)
	teams.On("List", anyCtx).Return([]models.Team{}, nil)

	st := NewGameList(games, teams, adminViewer, june).Create(ctx, in)
	if assert.NotNil(t, st.Created) {
		assert.Equal(t, int64(42), st.Created.ID)
	}
	assert.Len(t, st.Games, 1)
}

func TestGameList_CreateConflict(t *testing.T) {
	games := &mockGames{}
	games.On("Create", anyCtx, mock.Anything).Return(nil, serverErr(409, "A game already exists at that time."))

	st := NewGameList(games, &mockTeams{}, adminViewer, june).Create(ctx, models.Game{})
	assert.Nil(t, st.Created)
	assert.Equal(t, "A game already exists at that time.", st.Message)
}
