// file: derive/lineup.go
package derive

import (
	"math"
	"sort"
	"time"

	"go-ballpark/models"
)

func orderOf(p models.LineupPlayer) int {
	if p.OrderNumber == nil {
		return math.MaxInt
	}
	return *p.OrderNumber
}

// SortPlayers returns a copy ordered by orderNumber; players without one go
// last.
func SortPlayers(players []models.LineupPlayer) []models.LineupPlayer {
	sorted := models.ClonePlayers(players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return orderOf(sorted[i]) < orderOf(sorted[j])
	})
	return sorted
}

// Renumber assigns orderNumber 1..N in list order.
func Renumber(players []models.LineupPlayer) []models.LineupPlayer {
	out := models.ClonePlayers(players)
	for i := range out {
		n := i + 1
		out[i].OrderNumber = &n
	}
	return out
}

// SavablePlayers drops rows missing a name or position and sorts the rest.
func SavablePlayers(players []models.LineupPlayer) []models.LineupPlayer {
	kept := make([]models.LineupPlayer, 0, len(players))
	for _, p := range players {
		if p.PlayerName != "" && p.Position != "" {
			kept = append(kept, p)
		}
	}
	return SortPlayers(kept)
}

// BanExpiry is the last millisecond of the day days after now, in loc.
func BanExpiry(now time.Time, days int, loc *time.Location) time.Time {
	local := now.In(loc).AddDate(0, 0, days)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999_000_000, loc)
}
