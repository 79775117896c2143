// Package derive holds the pure view computations layered over container
// state: schedule partitioning, the month calendar, standings formatting and
// comment tallies. Nothing here performs I/O.
// file: derive/games.go
package derive

import (
	"sort"
	"time"

	"go-ballpark/models"
)

// Highlights are the three games featured at the top of the schedule.
type Highlights struct {
	Previous *models.Game
	Today    *models.Game
	Next     *models.Game
}

// SortGamesByDate returns a copy of games ordered by date ascending. Ties keep
// their input order.
func SortGamesByDate(games []models.Game) []models.Game {
	sorted := make([]models.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GameDate.Before(sorted[j].GameDate.Time)
	})
	return sorted
}

// PartitionGames scans games once in date order. Today is the first game on
// now's calendar day in loc, Previous the latest FINISHED game before now and
// Next the earliest SCHEDULED game after now. One game may fill more than one
// slot.
func PartitionGames(games []models.Game, now time.Time, loc *time.Location) Highlights {
	var h Highlights
	today := dayOf(now, loc)

	for _, g := range SortGamesByDate(games) {
		if g.GameDate.IsZero() {
			continue
		}
		if h.Today == nil && dayOf(g.GameDate.Time, loc).Equal(today) {
			h.Today = &g
		}
		if g.Status == models.StatusFinished && g.GameDate.Before(now) {
			h.Previous = &g
		}
		if h.Next == nil && g.Status == models.StatusScheduled && g.GameDate.After(now) {
			h.Next = &g
		}
	}
	return h
}

// BucketByDay groups the games of (year, month) in loc by day of month.
func BucketByDay(games []models.Game, year int, month time.Month, loc *time.Location) map[int][]models.Game {
	buckets := make(map[int][]models.Game)
	for _, g := range SortGamesByDate(games) {
		if g.GameDate.IsZero() {
			continue
		}
		local := g.GameDate.In(loc)
		if local.Year() == year && local.Month() == month {
			buckets[local.Day()] = append(buckets[local.Day()], g)
		}
	}
	return buckets
}

// WinLoss labels both sides of a FINISHED game with 승, 패 or 무. Other
// games, or games without both scores, get empty labels.
func WinLoss(g models.Game) (home, away string) {
	if g.Status != models.StatusFinished || g.HomeScore == nil || g.AwayScore == nil {
		return "", ""
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return "승", "패"
	case *g.HomeScore < *g.AwayScore:
		return "패", "승"
	default:
		return "무", "무"
	}
}

var statusLabels = map[models.GameStatus]string{
	models.StatusScheduled:  "Scheduled",
	models.StatusInProgress: "In progress",
	models.StatusFinished:   "Final",
	models.StatusCanceled:   "Canceled",
}

// StatusLabel is the display text of a game status.
func StatusLabel(s models.GameStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// PlaceholderLogo is shown for teams without a logo.
const PlaceholderLogo = "/static/images/team-placeholder.png"

// TeamLogo finds the logo of teamID among teams.
func TeamLogo(teamID int64, teams []models.Team) string {
	for _, t := range teams {
		if t.ID == teamID && t.LogoURL != "" {
			return t.LogoURL
		}
	}
	return PlaceholderLogo
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
