// file: derive/comments.go
package derive

import "go-ballpark/models"

// Comment filter values besides team names.
const (
	FilterAll  = "ALL"
	FilterText = "TEXT"
)

// Split is the two-segment prediction bar.
type Split struct {
	HomePercent float64
	AwayPercent float64
	Total       int64
}

// PredictionSplit computes each side's share of all predictions, 50/50 when
// there are none.
func PredictionSplit(counts models.PredictionCounts, homeTeam, awayTeam string) Split {
	var total int64
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return Split{HomePercent: 50, AwayPercent: 50}
	}
	return Split{
		HomePercent: float64(counts[homeTeam]) / float64(total) * 100,
		AwayPercent: float64(counts[awayTeam]) / float64(total) * 100,
		Total:       total,
	}
}

// FilterComments applies the client-side filter to the loaded page only.
// filter is ALL, TEXT, or one of the two team names.
func FilterComments(comments []models.Comment, filter, homeTeam, awayTeam string) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if matchesFilter(c, filter, homeTeam, awayTeam) {
			out = append(out, c)
		}
	}
	return out
}

func matchesFilter(c models.Comment, filter, homeTeam, awayTeam string) bool {
	switch {
	case filter == FilterAll || filter == "":
		return true
	case filter == FilterText:
		return c.Type == models.CommentText
	case filter == homeTeam || filter == awayTeam:
		return c.Type == models.CommentPrediction && c.PredictedTeamName == filter
	}
	return false
}

// TotalPages is ceil(total/size).
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// PredictionBadge returns "home", "away" or "" for a comment's team tag.
func PredictionBadge(c models.Comment, homeTeam, awayTeam string) string {
	if c.Type != models.CommentPrediction || c.PredictedTeamName == "" {
		return ""
	}
	switch c.PredictedTeamName {
	case homeTeam:
		return "home"
	case awayTeam:
		return "away"
	}
	return ""
}
