// file: controllers/comment_controller.go
package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"go-ballpark/models"
	"go-ballpark/viewstate"
)

// threadOf returns the game's comment thread with its team names set, so a
// prediction can be validated even before the detail page was viewed.
func threadOf(c *gin.Context, w *viewstate.Workspace, gameID int64) *viewstate.Comments {
	thread := w.Comments(gameID)
	if thread.State().HomeTeam != "" {
		return thread
	}
	d := w.GameDetail(gameID)
	st := d.State()
	if st.Game == nil {
		st = d.Load(c.Request.Context())
	}
	if st.Game != nil {
		thread.SetTeams(st.Game.HomeTeamName(), st.Game.OpponentTeamName())
	}
	return thread
}

func withThread(c *gin.Context, fn func(t *viewstate.Comments)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	w := workspaceOf(c)
	if w == nil {
		return
	}
	fn(threadOf(c, w, id))
	backTo(c, fmt.Sprintf("/games/%d#comments", id))
}

func commentForm(c *gin.Context) models.CommentRequest {
	return models.CommentRequest{
		CommentText:       c.PostForm("commentText"),
		Type:              models.CommentType(c.DefaultPostForm("type", string(models.CommentText))),
		PredictedTeamName: c.PostForm("predictedTeamName"),
	}
}

// AddComment posts a comment or prediction.
func AddComment(c *gin.Context) {
	withThread(c, func(t *viewstate.Comments) { t.Add(c.Request.Context(), commentForm(c)) })
}

// StartCommentEdit puts one comment in edit mode.
func StartCommentEdit(c *gin.Context) {
	cid, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	withThread(c, func(t *viewstate.Comments) { t.StartEdit(cid) })
}

// CancelCommentEdit leaves edit mode.
func CancelCommentEdit(c *gin.Context) {
	withThread(c, func(t *viewstate.Comments) { t.CancelEdit() })
}

// UpdateComment saves an edited comment.
func UpdateComment(c *gin.Context) {
	cid, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	withThread(c, func(t *viewstate.Comments) { t.Update(c.Request.Context(), cid, commentForm(c)) })
}

// RequestCommentDelete opens the delete confirmation.
func RequestCommentDelete(c *gin.Context) {
	cid, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	withThread(c, func(t *viewstate.Comments) { t.RequestDelete(cid) })
}

// CancelCommentDelete closes the confirmation.
func CancelCommentDelete(c *gin.Context) {
	withThread(c, func(t *viewstate.Comments) { t.CancelDelete() })
}

// ConfirmCommentDelete deletes the pending comment.
func ConfirmCommentDelete(c *gin.Context) {
	withThread(c, func(t *viewstate.Comments) { t.ConfirmDelete(c.Request.Context()) })
}
