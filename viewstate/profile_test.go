package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-ballpark/models"
)

type resetSpy struct{ calls int }

func (r *resetSpy) Reset() { r.calls++ }

func TestProfile_LoadAndUpdate(t *testing.T) {
	api := &mockProfile{}
	me := models.Member{ID: 2, Username: "kim", Nickname: "k", Email: "kim@example.com"}
	api.On("Me", anyCtx).Return(&me, nil)
	req := models.MemberUpdateRequest{Nickname: "kimmy", Email: "kim@example.com"}
	updated := me
	updated.Nickname = "kimmy"
	api.On("Update", anyCtx, req).Return(&updated, nil)

	p := NewProfile(api, &resetSpy{})
	st := p.Load(ctx)
	assert.Equal(t, "k", st.Member.Nickname)

	p.StartEdit()
	st = p.Update(ctx, req)
	assert.Equal(t, "kimmy", st.Member.Nickname)
	assert.False(t, st.Editing)
}

func TestProfile_UpdateDuplicate(t *testing.T) {
	api := &mockProfile{}
	api.On("Update", anyCtx, mock.Anything).Return(nil, serverErr(409, ""))

	st := NewProfile(api, &resetSpy{}).Update(ctx, models.MemberUpdateRequest{Nickname: "x", Email: "x@y.kr"})
	assert.Equal(t, MsgDuplicate, st.Message)
}

func TestProfile_ChangePassword(t *testing.T) {
	api := &mockProfile{}
	p := NewProfile(api, &resetSpy{})

	assert.Equal(t, "The new passwords do not match.", p.ChangePassword(ctx, "old", "new1", "new2").Message)
	api.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything)

	api.On("ChangePassword", anyCtx, models.PasswordChangeRequest{CurrentPassword: "bad", NewPassword: "new"}).
		Return(serverErr(400, ""))
	assert.Equal(t, "Your current password does not match.", p.ChangePassword(ctx, "bad", "new", "new").Message)
}

func TestProfile_WithdrawResetsSession(t *testing.T) {
	api := &mockProfile{}
	spy := &resetSpy{}
	api.On("Delete", anyCtx, models.MemberDeleteRequest{Password: "pw"}).Return(nil)

	p := NewProfile(api, spy)
	assert.False(t, p.ConfirmWithdraw(ctx, "pw").Deleted, "dialog must be opened first")

	p.RequestWithdraw()
	st := p.ConfirmWithdraw(ctx, "pw")
	assert.True(t, st.Deleted)
	assert.Equal(t, 1, spy.calls)
}

func TestProfile_WithdrawFailures(t *testing.T) {
	api := &mockProfile{}
	spy := &resetSpy{}
	api.On("Delete", anyCtx, models.MemberDeleteRequest{Password: "wrong"}).Return(serverErr(401, ""))
	api.On("Delete", anyCtx, models.MemberDeleteRequest{Password: "admin"}).Return(serverErr(403, ""))

	p := NewProfile(api, spy)
	p.RequestWithdraw()
	assert.Equal(t, "The password does not match.", p.ConfirmWithdraw(ctx, "wrong").Message)
	p.RequestWithdraw()
	assert.Equal(t, "Administrator accounts cannot be deleted.", p.ConfirmWithdraw(ctx, "admin").Message)
	assert.Zero(t, spy.calls)
}

func TestProfile_WithdrawFailurePrefersServerMessage(t *testing.T) {
	api := &mockProfile{}
	api.On("Delete", anyCtx, models.MemberDeleteRequest{Password: "wrong"}).Return(serverErr(401, "Password mismatch."))
	api.On("Delete", anyCtx, models.MemberDeleteRequest{Password: "admin"}).Return(serverErr(403, "Admins cannot withdraw."))

	p := NewProfile(api, &resetSpy{})
	p.RequestWithdraw()
	assert.Equal(t, "Password mismatch.", p.ConfirmWithdraw(ctx, "wrong").Message)
	p.RequestWithdraw()
	assert.Equal(t, "Admins cannot withdraw.", p.ConfirmWithdraw(ctx, "admin").Message)
}
