// file: derive/calendar.go
package derive

import (
	"time"

	"go-ballpark/models"
)

// CalendarGrid lays out (year, month) as weeks of 7 cells starting on
// Sunday. Blank cells hold 0.
func CalendarGrid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]int, 0, 42)
	for i := 0; i < lead; i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// CalendarCell is one rendered day.
type CalendarCell struct {
	Day   int
	Games []models.Game
	Today bool
}

// Calendar joins the grid with per-day buckets and marks today.
func Calendar(year int, month time.Month, buckets map[int][]models.Game, now time.Time, loc *time.Location) [][]CalendarCell {
	local := now.In(loc)
	todayInMonth := local.Year() == year && local.Month() == month

	grid := CalendarGrid(year, month)
	out := make([][]CalendarCell, len(grid))
	for w, week := range grid {
		out[w] = make([]CalendarCell, len(week))
		for i, day := range week {
			cell := CalendarCell{Day: day}
			if day > 0 {
				cell.Games = buckets[day]
				cell.Today = todayInMonth && local.Day() == day
			}
			out[w][i] = cell
		}
	}
	return out
}
