// file: api/games.go
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-ballpark/models"
)

// GameService covers /games.
type GameService struct{ c *Client }

func (s *GameService) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := s.c.do(ctx, request{op: "games.list", method: http.MethodGet, path: "/games"}, &games)
	return games, err
}

func (s *GameService) Get(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	if err := s.c.do(ctx, request{op: "games.get", method: http.MethodGet, path: idPath("/games/%v", id)}, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameService) Create(ctx context.Context, game models.Game) (*models.Game, error) {
	var created models.Game
	if err := s.c.do(ctx, request{op: "games.create", method: http.MethodPost, path: "/games", body: game}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *GameService) Update(ctx context.Context, id int64, game models.Game) (*models.Game, error) {
	var updated models.Game
	err := s.c.do(ctx, request{op: "games.update", method: http.MethodPut, path: idPath("/games/%v", id), body: game}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *GameService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, request{op: "games.delete", method: http.MethodDelete, path: idPath("/games/%v", id)}, nil)
}

// Crawl asks the backend to refresh the schedule of one month from the
// league website.
func (s *GameService) Crawl(ctx context.Context, seasonYear, month int) error {
	return s.c.do(ctx, request{
		op:     "games.crawl",
		method: http.MethodPost,
		path:   "/games/crawl-and-update",
		query:  url.Values{"seasonYear": {strconv.Itoa(seasonYear)}, "month": {strconv.Itoa(month)}},
	}, nil)
}

// LineupService covers a game's expected lineups.
type LineupService struct{ c *Client }

// Get returns both sides. A 404 means no lineup was published yet.
func (s *LineupService) Get(ctx context.Context, gameID int64) (*models.LineupResponse, error) {
	var resp models.LineupResponse
	if err := s.c.do(ctx, request{op: "lineups.get", method: http.MethodGet, path: idPath("/games/%v/lineup", gameID)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Save replaces one side's lineup wholesale.
func (s *LineupService) Save(ctx context.Context, gameID int64, lineup models.Lineup) (*models.Lineup, error) {
	var saved models.Lineup
	err := s.c.do(ctx, request{op: "lineups.save", method: http.MethodPut, path: idPath("/games/%v/lineup", gameID), body: lineup}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *LineupService) Delete(ctx context.Context, gameID int64) error {
	return s.c.do(ctx, request{op: "lineups.delete", method: http.MethodDelete, path: idPath("/games/%v/lineup", gameID)}, nil)
}

// Crawl asks the backend to scrape the lineups of one game.
func (s *LineupService) Crawl(ctx context.Context, gameID int64) error {
	return s.c.do(ctx, request{op: "lineups.crawl", method: http.MethodPost, path: idPath("/lineups/%v/crawl", gameID)}, nil)
}
