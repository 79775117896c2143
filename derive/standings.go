// file: derive/standings.go
package derive

import (
	"math"
	"sort"
	"strconv"

	"go-ballpark/models"
)

// WinRate is wins/(wins+losses); draws are excluded and no decisions give 0.
func WinRate(wins, losses int) float64 {
	if wins+losses == 0 {
		return 0
	}
	return float64(wins) / float64(wins+losses)
}

// FormatWinRate renders three decimals, "0.000" for NaN or infinities.
func FormatWinRate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0.000"
	}
	return strconv.FormatFloat(rate, 'f', 3, 64)
}

// FormatGamesBehind renders one decimal, "-" for the leader.
func FormatGamesBehind(gb float64) string {
	if gb == 0 || math.IsNaN(gb) {
		return "-"
	}
	return strconv.FormatFloat(gb, 'f', 1, 64)
}

// SortByRank returns a copy ordered by currentRank ascending; equal ranks
// keep their order.
func SortByRank(rankings []models.TeamRanking) []models.TeamRanking {
	sorted := make([]models.TeamRanking, len(rankings))
	copy(sorted, rankings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CurrentRank < sorted[j].CurrentRank
	})
	return sorted
}
