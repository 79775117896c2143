//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-ballpark/viewstate"
)

func commentRouter(t *testing.T, b *fakeBackend) *gin.Engine {
	router := setupTestRouter(t, newTestVisitor(t, b))
	router.GET("/games/:id", ShowGame)
	router.POST("/games/:id/comments", AddComment)
	router.POST("/games/:id/comments/:commentId", UpdateComment)
	router.POST("/games/:id/comments/:commentId/edit", StartCommentEdit)
	router.POST("/games/:id/comments/:commentId/delete", RequestCommentDelete)
	router.POST("/games/:id/comments/delete/cancel", CancelCommentDelete)
	router.POST("/games/:id/comments/delete/confirm", ConfirmCommentDelete)
	return router
}

func TestAddComment_Prediction(t *testing.T) {
	b := gameBackend(t, fanStatus)
	b.reply("POST /games/1/comments", http.StatusCreated, `{"id":6,"gameId":1,"commentText":"Bears all the way","type":"PREDICTION","predictedTeamName":"Bears"}`)
	router := commentRouter(t, b)

	w := post(router, "/games/1/comments", url.Values{
		"commentText":       {"  Bears all the way "},
		"type":              {"PREDICTION"},
		"predictedTeamName": {"Bears"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/games/1#comments", w.Header().Get("Location"))
	sent := b.decoded("POST /games/1/comments")
	assert.Equal(t, "Bears all the way", sent["commentText"])
	assert.Equal(t, "Bears", sent["predictedTeamName"])

	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, "Your comment was posted.", page.Find(".comment-flash").Text())
}

func TestAddComment_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status string
		form   url.Values
		want   string
	}{
		{
			name: "anonymous",
			form: url.Values{"commentText": {"hi"}},
			want: viewstate.MsgLoginRequired,
		},
		{
			name:   "empty text",
			status: fanStatus,
			form:   url.Values{"commentText": {"   "}},
			want:   "Please enter a comment.",
		},
		{
			name:   "third team",
			status: fanStatus,
			form:   url.Values{"commentText": {"go"}, "type": {"PREDICTION"}, "predictedTeamName": {"Tigers"}},
			want:   "Predictions must name one of the two teams.",
		},
		{
			name:   "no team",
			status: fanStatus,
			form:   url.Values{"commentText": {"go"}, "type": {"PREDICTION"}},
			want:   "Please choose the team you predict will win.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := gameBackend(t, tt.status)
			router := commentRouter(t, b)

			post(router, "/games/1/comments", tt.form)

			assert.Empty(t, b.body("POST /games/1/comments"))
			page := doc(t, get(router, "/games/1"))
			assert.Equal(t, tt.want, page.Find(".comment-flash").Text())
		})
	}
}

func TestCommentDeleteFlow(t *testing.T) {
	b := gameBackend(t, fanStatus)
	b.reply("DELETE /games/1/comments/5", http.StatusNoContent, ``)
	router := commentRouter(t, b)

	get(router, "/games/1")
	post(router, "/games/1/comments/5/delete", nil)
	w := post(router, "/games/1/comments/delete/confirm", nil)

	assert.Equal(t, "/games/1#comments", w.Header().Get("Location"))
	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, "The comment was deleted.", page.Find(".comment-flash").Text())
}

func TestCommentDelete_OthersCommentNotPermitted(t *testing.T) {
	b := gameBackend(t, fanStatus)
	router := commentRouter(t, b)

	get(router, "/games/1")
	post(router, "/games/1/comments/4/delete", nil)
	post(router, "/games/1/comments/delete/confirm", nil)

	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, viewstate.MsgNotPermitted, page.Find(".comment-flash").Text())
}

func TestUpdateComment(t *testing.T) {
	b := gameBackend(t, fanStatus)
	b.reply("PUT /games/1/comments/5", http.StatusOK, `{"id":5,"gameId":1,"commentText":"Bears by three","type":"PREDICTION","predictedTeamName":"Bears"}`)
	router := commentRouter(t, b)

	get(router, "/games/1")
	post(router, "/games/1/comments/5/edit", nil)
	post(router, "/games/1/comments/5", url.Values{
		"commentText":       {"Bears by three"},
		"type":              {"PREDICTION"},
		"predictedTeamName": {"Bears"},
	})

	assert.Equal(t, "Bears by three", b.decoded("PUT /games/1/comments/5")["commentText"])
	page := doc(t, get(router, "/games/1"))
	assert.Equal(t, "The comment was updated.", page.Find(".comment-flash").Text())
}
