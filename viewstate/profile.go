// file: viewstate/profile.go
package viewstate

import (
	"context"
	"net/http"
	"strings"

	"go-ballpark/api"
	"go-ballpark/logger"
	"go-ballpark/models"
)

// ProfileAPI is the slice of the gateway the profile screen uses.
type ProfileAPI interface {
	Me(ctx context.Context) (*models.Member, error)
	Update(ctx context.Context, req models.MemberUpdateRequest) (*models.Member, error)
	ChangePassword(ctx context.Context, req models.PasswordChangeRequest) error
	Delete(ctx context.Context, req models.MemberDeleteRequest) error
}

// SessionResetter ends the local session after the account is removed.
type SessionResetter interface {
	Reset()
}

// ProfileState is the signed-in member's own profile.
type ProfileState struct {
	Status
	Member  *models.Member
	Editing bool
	// Withdraw is the account deletion dialog.
	Withdraw Pending[struct{}]
	Deleted  bool
}

// Profile actions.
type (
	StartProfileEdit  struct{}
	CancelProfileEdit struct{}
	AccountDeleted    struct{}
)

func (StartProfileEdit) isAction()  {}
func (CancelProfileEdit) isAction() {}
func (AccountDeleted) isAction()    {}

func reduceProfile(s ProfileState, a Action) ProfileState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Withdraw, a); ok {
		s.Withdraw = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[models.Member]:
		m := a.Payload
		s.Loading = false
		s.Error = ""
		s.Member = &m
		s.Editing = false
	case StartProfileEdit:
		s.Editing = s.Member != nil
	case CancelProfileEdit:
		s.Editing = false
	case AccountDeleted:
		s.Deleted = true
		s.Member = nil
	default:
		return unhandled("Profile", s, a)
	}
	return s
}

// Profile drives the profile screen.
type Profile struct {
	*Container[ProfileState]
	api     ProfileAPI
	session SessionResetter
}

// NewProfile creates the profile container.
func NewProfile(api ProfileAPI, session SessionResetter) *Profile {
	return &Profile{
		Container: NewContainer("Profile", ProfileState{}, reduceProfile),
		api:       api,
		session:   session,
	}
}

// Load fetches the member.
func (p *Profile) Load(ctx context.Context) ProfileState {
	t := p.Begin("me", FetchStart{})
	me, err := p.api.Me(ctx)
	if err != nil {
		logger.Warn.Printf("[Profile.Load] %v", err)
		p.Resolve(t, FetchError{Message: messageFor(err, "Failed to load your profile.", nil)})
		return p.State()
	}
	p.Resolve(t, FetchSuccess[models.Member]{Payload: *me})
	return p.State()
}

// StartEdit enters edit mode.
func (p *Profile) StartEdit() ProfileState { return p.Dispatch(StartProfileEdit{}) }

// CancelEdit leaves edit mode.
func (p *Profile) CancelEdit() ProfileState { return p.Dispatch(CancelProfileEdit{}) }

// Update saves the profile; the response replaces the loaded member.
func (p *Profile) Update(ctx context.Context, req models.MemberUpdateRequest) ProfileState {
	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Email = strings.TrimSpace(req.Email)
	if req.Nickname == "" || req.Email == "" {
		return p.Dispatch(SetMessage{Message: "Nickname and email are required."})
	}
	if !emailPattern.MatchString(req.Email) {
		return p.Dispatch(SetMessage{Message: "Please enter a valid email address."})
	}
	saved, err := p.api.Update(ctx, req)
	if err != nil {
		logger.Warn.Printf("[Profile.Update] %v", err)
		return p.Dispatch(SetMessage{Message: messageFor(err, "Failed to update your profile.", nil)})
	}
	return p.Dispatch(FetchSuccess[models.Member]{Payload: *saved}, SetMessage{Message: "Your profile was updated."})
}

// ChangePassword rotates the password after checking the confirmation.
func (p *Profile) ChangePassword(ctx context.Context, current, next, confirm string) ProfileState {
	switch {
	case current == "" || next == "":
		return p.Dispatch(SetMessage{Message: "Please enter your current and new password."})
	case next != confirm:
		return p.Dispatch(SetMessage{Message: "The new passwords do not match."})
	}
	err := p.api.ChangePassword(ctx, models.PasswordChangeRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		logger.Warn.Printf("[Profile.ChangePassword] %v", err)
		msg := messageFor(err, "Failed to change your password.", map[int]string{
			http.StatusBadRequest: "Your current password does not match.",
		})
		return p.Dispatch(SetMessage{Message: msg})
	}
	return p.Dispatch(SetMessage{Message: "Your password was changed."})
}

// RequestWithdraw opens the account deletion dialog.
func (p *Profile) RequestWithdraw() ProfileState {
	return p.Dispatch(OpenConfirm[struct{}]{Prompt: "Delete your account? Enter your password to confirm."})
}

// CancelWithdraw closes the dialog.
func (p *Profile) CancelWithdraw() ProfileState {
	return p.Dispatch(CloseConfirm{})
}

// ConfirmWithdraw deletes the account and ends the local session.
func (p *Profile) ConfirmWithdraw(ctx context.Context, password string) ProfileState {
	st := p.State()
	if !st.Withdraw.Open {
		return st
	}
	if password == "" {
		return p.Dispatch(SetMessage{Message: "Please enter your password."})
	}
	p.Dispatch(CloseConfirm{})
	err := p.api.Delete(ctx, models.MemberDeleteRequest{Password: password})
	if err != nil {
		logger.Warn.Printf("[Profile.ConfirmWithdraw] %v", err)
		msg := messageFor(err, "Failed to delete your account.", map[int]string{
			http.StatusUnauthorized: api.ServerMessage(err, "The password does not match."),
			http.StatusForbidden:    api.ServerMessage(err, "Administrator accounts cannot be deleted."),
		})
		return p.Dispatch(SetMessage{Message: msg})
	}
	p.session.Reset()
	logger.Info.Println("[Profile.ConfirmWithdraw] account deleted")
	return p.Dispatch(AccountDeleted{}, SetMessage{Message: "Your account was deleted."})
}
