// File: models/comment.go
package models

// CommentType distinguishes plain chat from win predictions.
type CommentType string

const (
	CommentText       CommentType = "TEXT"
	CommentPrediction CommentType = "PREDICTION"
)

// Comment is one entry on a game's comment thread.
type Comment struct {
	ID                int64       `json:"id"`
	GameID            int64       `json:"gameId"`
	CommentText       string      `json:"commentText"`
	Type              CommentType `json:"type"`
	PredictedTeamName string      `json:"predictedTeamName,omitempty"`
	Username          string      `json:"username"`
	Nickname          string      `json:"nickname"`
	CreatedAt         LocalTime   `json:"createdAt"`
}

// CommentRequest is the body of comment create and update calls.
type CommentRequest struct {
	CommentText       string      `json:"commentText"`
	Type              CommentType `json:"type"`
	PredictedTeamName string      `json:"predictedTeamName,omitempty"`
}

// PredictionCounts maps a predicted team name to its number of predictions.
type PredictionCounts map[string]int64

// Page is a server-paginated slice of results.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
}

// PageQuery are the paging parameters of a list call.
type PageQuery struct {
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

// DefaultCommentQuery is the newest-first query for page.
func DefaultCommentQuery(page, size int) PageQuery {
	return PageQuery{Page: page, Size: size, SortBy: "createdAt", SortDirection: "desc"}
}
