// File: models/lineup.go
package models

// TeamType selects one side of a game's lineup.
type TeamType string

const (
	Home TeamType = "HOME"
	Away TeamType = "AWAY"
)

// LineupPlayer is one batting-order slot. OrderNumber is nil for players
// without a slot (pitchers, for instance).
type LineupPlayer struct {
	ID          *int64 `json:"id,omitempty"`
	OrderNumber *int   `json:"orderNumber"`
	PlayerName  string `json:"playerName"`
	Position    string `json:"position"`
}

// Lineup is the expected lineup of one side.
type Lineup struct {
	ID       *int64         `json:"id,omitempty"`
	GameID   int64          `json:"gameId"`
	TeamType TeamType       `json:"teamType"`
	Players  []LineupPlayer `json:"players"`
}

// LineupResponse is the GET /games/{id}/lineup payload.
type LineupResponse struct {
	GameID     int64   `json:"gameId"`
	HomeLineup *Lineup `json:"homeLineup"`
	AwayLineup *Lineup `json:"awayLineup"`
}

// ClonePlayers copies a player list so drafts never share memory with the
// confirmed lineup.
func ClonePlayers(players []LineupPlayer) []LineupPlayer {
	out := make([]LineupPlayer, len(players))
	for i, p := range players {
		out[i] = p
		if p.ID != nil {
			id := *p.ID
			out[i].ID = &id
		}
		if p.OrderNumber != nil {
			n := *p.OrderNumber
			out[i].OrderNumber = &n
		}
	}
	return out
}
