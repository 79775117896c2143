// file: api/comments.go
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-ballpark/models"
)

// CommentService covers /games/{gameId}/comments.
type CommentService struct{ c *Client }

func (s *CommentService) Add(ctx context.Context, gameID int64, req models.CommentRequest) (*models.Comment, error) {
	var created models.Comment
	err := s.c.do(ctx, request{op: "comments.add", method: http.MethodPost, path: idPath("/games/%v/comments", gameID), body: req}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List fetches one page. Zero values in q fall back to page 0, size 10,
// newest first.
func (s *CommentService) List(ctx context.Context, gameID int64, q models.PageQuery) (*models.Page[models.Comment], error) {
	if q.Size <= 0 {
		q.Size = 10
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortDirection == "" {
		q.SortDirection = "desc"
	}
	var page models.Page[models.Comment]
	err := s.c.do(ctx, request{
		op:     "comments.list",
		method: http.MethodGet,
		path:   idPath("/games/%v/comments", gameID),
		query: url.Values{
			"page":          {strconv.Itoa(q.Page)},
			"size":          {strconv.Itoa(q.Size)},
			"sortBy":        {q.SortBy},
			"sortDirection": {q.SortDirection},
		},
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// PredictionCounts returns the per-team tally of prediction comments.
func (s *CommentService) PredictionCounts(ctx context.Context, gameID int64) (models.PredictionCounts, error) {
	counts := models.PredictionCounts{}
	err := s.c.do(ctx, request{op: "comments.predictionCounts", method: http.MethodGet, path: idPath("/games/%v/comments/prediction-counts", gameID)}, &counts)
	return counts, err
}

func (s *CommentService) Update(ctx context.Context, gameID, commentID int64, req models.CommentRequest) (*models.Comment, error) {
	var updated models.Comment
	err := s.c.do(ctx, request{
		op:     "comments.update",
		method: http.MethodPut,
		path:   idPath("/games/%v/comments/%v", gameID, commentID),
		body:   req,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CommentService) Delete(ctx context.Context, gameID, commentID int64) error {
	return s.c.do(ctx, request{op: "comments.delete", method: http.MethodDelete, path: idPath("/games/%v/comments/%v", gameID, commentID)}, nil)
}
