// File: models/game.go
package models

// GameStatus is the lifecycle of a scheduled game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinished   GameStatus = "FINISHED"
	StatusCanceled   GameStatus = "CANCELED"
)

// GameStatuses lists every status in display order.
var GameStatuses = []GameStatus{StatusScheduled, StatusInProgress, StatusFinished, StatusCanceled}

// Valid reports whether s is a known status.
func (s GameStatus) Valid() bool {
	for _, known := range GameStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Team is a club referenced by games and rankings.
type Team struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Game is one scheduled fixture.
type Game struct {
	ID           int64      `json:"id"`
	GameDate     LocalTime  `json:"gameDate"`
	Location     string     `json:"location"`
	HomeTeam     *Team      `json:"homeTeam"`
	OpponentTeam *Team      `json:"opponentTeam"`
	HomeScore    *int       `json:"homeScore"`
	AwayScore    *int       `json:"awayScore"`
	Status       GameStatus `json:"status"`
}

// Clone returns a deep copy suitable for an edit draft.
func (g Game) Clone() Game {
	out := g
	if g.HomeTeam != nil {
		t := *g.HomeTeam
		out.HomeTeam = &t
	}
	if g.OpponentTeam != nil {
		t := *g.OpponentTeam
		out.OpponentTeam = &t
	}
	if g.HomeScore != nil {
		v := *g.HomeScore
		out.HomeScore = &v
	}
	if g.AwayScore != nil {
		v := *g.AwayScore
		out.AwayScore = &v
	}
	return out
}

// HomeTeamName is the home side's name, or "" when unset.
func (g Game) HomeTeamName() string {
	if g.HomeTeam == nil {
		return ""
	}
	return g.HomeTeam.Name
}

// OpponentTeamName is the visiting side's name, or "" when unset.
func (g Game) OpponentTeamName() string {
	if g.OpponentTeam == nil {
		return ""
	}
	return g.OpponentTeam.Name
}

// TeamRanking is one row of the season standings.
type TeamRanking struct {
	ID          int64   `json:"id,omitempty"`
	Team        *Team   `json:"team"`
	SeasonYear  int     `json:"seasonYear"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	WinRate     float64 `json:"winRate"`
	CurrentRank int     `json:"currentRank"`
	GamesBehind float64 `json:"gamesBehind"`
}

// TeamName is the ranked team's name, or "" when unset.
func (r TeamRanking) TeamName() string {
	if r.Team == nil {
		return ""
	}
	return r.Team.Name
}
