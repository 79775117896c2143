// file: api/teams.go
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-ballpark/models"
)

// TeamService covers /teams.
type TeamService struct{ c *Client }

func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := s.c.do(ctx, request{op: "teams.list", method: http.MethodGet, path: "/teams"}, &teams)
	return teams, err
}

func (s *TeamService) Get(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	if err := s.c.do(ctx, request{op: "teams.get", method: http.MethodGet, path: idPath("/teams/%v", id)}, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) GetByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := s.c.do(ctx, request{op: "teams.byName", method: http.MethodGet, path: idPath("/teams/by-name/%v", name)}, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) Create(ctx context.Context, team models.Team) (*models.Team, error) {
	var created models.Team
	if err := s.c.do(ctx, request{op: "teams.create", method: http.MethodPost, path: "/teams", body: team}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *TeamService) Update(ctx context.Context, id int64, team models.Team) (*models.Team, error) {
	var updated models.Team
	if err := s.c.do(ctx, request{op: "teams.update", method: http.MethodPut, path: idPath("/teams/%v", id), body: team}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TeamService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, request{op: "teams.delete", method: http.MethodDelete, path: idPath("/teams/%v", id)}, nil)
}

// RankingService covers /rankings.
type RankingService struct{ c *Client }

func seasonQuery(seasonYear int) url.Values {
	return url.Values{"seasonYear": {strconv.Itoa(seasonYear)}}
}

func (s *RankingService) List(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	var rankings []models.TeamRanking
	err := s.c.do(ctx, request{op: "rankings.list", method: http.MethodGet, path: "/rankings", query: seasonQuery(seasonYear)}, &rankings)
	return rankings, err
}

func (s *RankingService) Get(ctx context.Context, id int64) (*models.TeamRanking, error) {
	var ranking models.TeamRanking
	if err := s.c.do(ctx, request{op: "rankings.get", method: http.MethodGet, path: idPath("/rankings/%v", id)}, &ranking); err != nil {
		return nil, err
	}
	return &ranking, nil
}

// Calculate recomputes the standings from stored game results.
func (s *RankingService) Calculate(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	var rankings []models.TeamRanking
	err := s.c.do(ctx, request{op: "rankings.calculate", method: http.MethodPost, path: "/rankings/calculate", query: seasonQuery(seasonYear)}, &rankings)
	return rankings, err
}

// Crawl replaces the standings with the league website's table.
func (s *RankingService) Crawl(ctx context.Context, seasonYear int) ([]models.TeamRanking, error) {
	var rankings []models.TeamRanking
	err := s.c.do(ctx, request{op: "rankings.crawl", method: http.MethodPost, path: "/rankings/crawl-and-update", query: seasonQuery(seasonYear)}, &rankings)
	return rankings, err
}

func (s *RankingService) Create(ctx context.Context, ranking models.TeamRanking) (*models.TeamRanking, error) {
	var created models.TeamRanking
	if err := s.c.do(ctx, request{op: "rankings.create", method: http.MethodPost, path: "/rankings", body: ranking}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *RankingService) Update(ctx context.Context, id int64, ranking models.TeamRanking) (*models.TeamRanking, error) {
	var updated models.TeamRanking
	err := s.c.do(ctx, request{op: "rankings.update", method: http.MethodPut, path: idPath("/rankings/%v", id), body: ranking}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RankingService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, request{op: "rankings.delete", method: http.MethodDelete, path: idPath("/rankings/%v", id)}, nil)
}
