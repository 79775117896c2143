// file: viewstate/comments.go
package viewstate

import (
	"context"
	"strings"

	"go-ballpark/derive"
	"go-ballpark/logger"
	"go-ballpark/models"
)

// CommentsAPI is the slice of the gateway the comment thread uses.
type CommentsAPI interface {
	Add(ctx context.Context, gameID int64, req models.CommentRequest) (*models.Comment, error)
	List(ctx context.Context, gameID int64, q models.PageQuery) (*models.Page[models.Comment], error)
	PredictionCounts(ctx context.Context, gameID int64) (models.PredictionCounts, error)
	Update(ctx context.Context, gameID, commentID int64, req models.CommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, gameID, commentID int64) error
}

// CommentsState is one game's comment thread.
type CommentsState struct {
	Status
	GameID   int64
	HomeTeam string
	AwayTeam string
	Comments []models.Comment
	Page     int
	Size     int
	Total    int64
	Filter   string
	Counts   models.PredictionCounts
	// Editing is the id of the comment in edit mode, 0 for none.
	Editing int64
	Delete  Pending[int64]
}

// Visible is the loaded page after the client-side filter.
func (s CommentsState) Visible() []models.Comment {
	return derive.FilterComments(s.Comments, s.Filter, s.HomeTeam, s.AwayTeam)
}

// TotalPages is the server-side page count.
func (s CommentsState) TotalPages() int {
	return derive.TotalPages(s.Total, s.Size)
}

// Split is the prediction bar for the two teams.
func (s CommentsState) Split() derive.Split {
	return derive.PredictionSplit(s.Counts, s.HomeTeam, s.AwayTeam)
}

// Comment actions.
type (
	SetTeams struct {
		Home string
		Away string
	}
	SetPage           struct{ Page int }
	SetFilter         struct{ Filter string }
	CountsLoaded      struct{ Counts models.PredictionCounts }
	StartCommentEdit  struct{ ID int64 }
	CancelCommentEdit struct{}
)

func (SetTeams) isAction()          {}
func (SetPage) isAction()           {}
func (SetFilter) isAction()         {}
func (CountsLoaded) isAction()      {}
func (StartCommentEdit) isAction()  {}
func (CancelCommentEdit) isAction() {}

func reduceComments(s CommentsState, a Action) CommentsState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Delete, a); ok {
		s.Delete = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[models.Page[models.Comment]]:
		s.Loading = false
		s.Error = ""
		s.Comments = a.Payload.Content
		s.Page = a.Payload.Number
		s.Total = a.Payload.TotalElements
	case SetTeams:
		s.HomeTeam = a.Home
		s.AwayTeam = a.Away
	case SetPage:
		s.Page = a.Page
	case SetFilter:
		s.Filter = a.Filter
		s.Page = 0
	case CountsLoaded:
		s.Counts = a.Counts
	case StartCommentEdit:
		s.Editing = a.ID
	case CancelCommentEdit:
		s.Editing = 0
	default:
		return unhandled("Comments", s, a)
	}
	return s
}

// Comments drives one game's comment thread.
type Comments struct {
	*Container[CommentsState]
	api      CommentsAPI
	viewer   Viewer
	onChange func(models.PredictionCounts)
}

// NewComments creates the thread for gameID with the given page size.
func NewComments(gameID int64, size int, api CommentsAPI, viewer Viewer) *Comments {
	if size <= 0 {
		size = 10
	}
	initial := CommentsState{GameID: gameID, Size: size, Filter: derive.FilterAll}
	return &Comments{
		Container: NewContainer("Comments", initial, reduceComments),
		api:       api,
		viewer:    viewer,
	}
}

// OnChange registers a hook called with the new tally after each confirmed
// mutation.
func (c *Comments) OnChange(fn func(models.PredictionCounts)) {
	c.onChange = fn
}

// SetTeams records the two team names used by filters and the tally.
func (c *Comments) SetTeams(home, away string) CommentsState {
	return c.Dispatch(SetTeams{Home: home, Away: away})
}

// Load fetches page and the prediction tally.
func (c *Comments) Load(ctx context.Context, page int) CommentsState {
	if page < 0 {
		page = 0
	}
	c.loadPage(ctx, page)
	c.loadCounts(ctx)
	return c.State()
}

func (c *Comments) loadPage(ctx context.Context, page int) {
	st := c.State()
	t := c.Begin("page", FetchStart{}, SetPage{Page: page})
	result, err := c.api.List(ctx, st.GameID, models.DefaultCommentQuery(page, st.Size))
	if err != nil {
		logger.Warn.Printf("[Comments.loadPage] game %d page %d: %v", st.GameID, page, err)
		c.Resolve(t, FetchError{Message: messageFor(err, "Failed to load comments.", nil)})
		return
	}
	c.Resolve(t, FetchSuccess[models.Page[models.Comment]]{Payload: *result})
}

func (c *Comments) loadCounts(ctx context.Context) {
	id := c.State().GameID
	t := c.Begin("counts")
	counts, err := c.api.PredictionCounts(ctx, id)
	if err != nil {
		logger.Warn.Printf("[Comments.loadCounts] game %d: %v", id, err)
		c.Resolve(t, SetMessage{Message: "Failed to load the prediction tally."})
		return
	}
	if c.Resolve(t, CountsLoaded{Counts: counts}) && c.onChange != nil {
		c.onChange(counts)
	}
}

// LoadCounts refreshes only the prediction tally.
func (c *Comments) LoadCounts(ctx context.Context) CommentsState {
	c.loadCounts(ctx)
	return c.State()
}

// SetFilter changes the client-side filter and returns to the first page.
func (c *Comments) SetFilter(ctx context.Context, filter string) CommentsState {
	c.Dispatch(SetFilter{Filter: filter})
	c.loadPage(ctx, 0)
	return c.State()
}

// CanModify reports whether the viewer may edit or delete comment.
func (c *Comments) CanModify(comment models.Comment) bool {
	u, ok := c.viewer.User()
	if !ok {
		return false
	}
	return u.Username == comment.Username || u.IsAdmin()
}

func (c *Comments) validate(req models.CommentRequest) string {
	if _, ok := c.viewer.User(); !ok {
		return MsgLoginRequired
	}
	if strings.TrimSpace(req.CommentText) == "" {
		return "Please enter a comment."
	}
	switch req.Type {
	case models.CommentText:
	case models.CommentPrediction:
		st := c.State()
		if req.PredictedTeamName == "" {
			return "Please choose the team you predict will win."
		}
		if req.PredictedTeamName != st.HomeTeam && req.PredictedTeamName != st.AwayTeam {
			return "Predictions must name one of the two teams."
		}
	default:
		return "Unknown comment type."
	}
	return ""
}

func normalize(req models.CommentRequest) models.CommentRequest {
	req.CommentText = strings.TrimSpace(req.CommentText)
	if req.Type != models.CommentPrediction {
		req.PredictedTeamName = ""
	}
	return req
}

// Add posts a comment and reloads the first page and the tally.
func (c *Comments) Add(ctx context.Context, req models.CommentRequest) CommentsState {
	if msg := c.validate(req); msg != "" {
		return c.Dispatch(SetMessage{Message: msg})
	}
	id := c.State().GameID
	if _, err := c.api.Add(ctx, id, normalize(req)); err != nil {
		logger.Warn.Printf("[Comments.Add] game %d: %v", id, err)
		return c.Dispatch(SetMessage{Message: messageFor(err, "Failed to post the comment.", nil)})
	}
	c.Load(ctx, 0)
	return c.Dispatch(SetMessage{Message: "Your comment was posted."})
}

// StartEdit opens commentID for editing.
func (c *Comments) StartEdit(commentID int64) CommentsState {
	for _, cm := range c.State().Comments {
		if cm.ID == commentID && c.CanModify(cm) {
			return c.Dispatch(StartCommentEdit{ID: commentID})
		}
	}
	return c.Dispatch(SetMessage{Message: MsgNotPermitted})
}

// CancelEdit leaves edit mode.
func (c *Comments) CancelEdit() CommentsState {
	return c.Dispatch(CancelCommentEdit{})
}

// Update saves an edited comment and reloads the current page.
func (c *Comments) Update(ctx context.Context, commentID int64, req models.CommentRequest) CommentsState {
	if msg := c.validate(req); msg != "" {
		return c.Dispatch(SetMessage{Message: msg})
	}
	st := c.State()
	if _, err := c.api.Update(ctx, st.GameID, commentID, normalize(req)); err != nil {
		logger.Warn.Printf("[Comments.Update] comment %d: %v", commentID, err)
		return c.Dispatch(SetMessage{Message: messageFor(err, "Failed to update the comment.", nil)})
	}
	c.Dispatch(CancelCommentEdit{})
	c.Load(ctx, st.Page)
	return c.Dispatch(SetMessage{Message: "The comment was updated."})
}

// RequestDelete opens the delete confirmation for commentID.
func (c *Comments) RequestDelete(commentID int64) CommentsState {
	for _, cm := range c.State().Comments {
		if cm.ID == commentID && c.CanModify(cm) {
			return c.Dispatch(OpenConfirm[int64]{Target: commentID, Prompt: "Delete this comment?"})
		}
	}
	return c.Dispatch(SetMessage{Message: MsgNotPermitted})
}

// CancelDelete closes the confirmation.
func (c *Comments) CancelDelete() CommentsState {
	return c.Dispatch(CloseConfirm{})
}

// ConfirmDelete deletes the pending comment. When it was the only comment on
// a page past the first, the previous page is loaded instead.
func (c *Comments) ConfirmDelete(ctx context.Context) CommentsState {
	st := c.State()
	if !st.Delete.Open {
		return st
	}
	c.Dispatch(CloseConfirm{})
	if err := c.api.Delete(ctx, st.GameID, st.Delete.Target); err != nil {
		logger.Warn.Printf("[Comments.ConfirmDelete] comment %d: %v", st.Delete.Target, err)
		return c.Dispatch(SetMessage{Message: messageFor(err, "Failed to delete the comment.", nil)})
	}
	page := st.Page
	if len(st.Comments) == 1 && page > 0 {
		page--
	}
	c.Load(ctx, page)
	return c.Dispatch(SetMessage{Message: "The comment was deleted."})
}
