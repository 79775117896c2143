// file: viewstate/members.go
package viewstate

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-ballpark/derive"
	"go-ballpark/logger"
	"go-ballpark/models"
)

// MemberAdminAPI is the slice of the gateway the member admin table uses.
type MemberAdminAPI interface {
	List(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, id int64, member models.Member) (*models.Member, error)
	BanPermanently(ctx context.Context, username string) error
	BanUntil(ctx context.Context, username string, until time.Time) error
	Unban(ctx context.Context, username string) error
	Delete(ctx context.Context, id int64) error
}

// BanChoice is the duration picked in the ban dialog: "permanent" or a
// positive number of days.
type BanChoice struct {
	Permanent bool
	Days      string
}

// MembersState is the member admin table.
type MembersState struct {
	Status
	Members []models.Member
	// Editing is the member open in the edit modal.
	Editing *models.Member
	Delete  Pending[int64]
	Ban     Pending[string]
}

// Member actions.
type (
	MemberSpliced   struct{ Member models.Member }
	StartMemberEdit struct{ Member models.Member }
	CloseMemberEdit struct{}
	OpenBan         struct{ Username string }
	CloseBan        struct{}
)

func (MemberSpliced) isAction()   {}
func (StartMemberEdit) isAction() {}
func (CloseMemberEdit) isAction() {}
func (OpenBan) isAction()         {}
func (CloseBan) isAction()        {}

func memberID(m models.Member) int64 { return m.ID }

func reduceMembers(s MembersState, a Action) MembersState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	if p, ok := reducePending(s.Delete, a); ok {
		s.Delete = p
		return s
	}
	switch a := a.(type) {
	case FetchSuccess[[]models.Member]:
		s.Loading = false
		s.Error = ""
		s.Members = a.Payload
	case MemberSpliced:
		s.Members = spliceByID(s.Members, a.Member, memberID)
	case StartMemberEdit:
		m := a.Member
		s.Editing = &m
	case CloseMemberEdit:
		s.Editing = nil
	case OpenBan:
		s.Ban = Pending[string]{Open: true, Target: a.Username, Prompt: "Ban " + a.Username + "?"}
	case CloseBan:
		s.Ban = Pending[string]{}
	default:
		return unhandled("Members", s, a)
	}
	return s
}

// Members drives the member admin table.
type Members struct {
	*Container[MembersState]
	api    MemberAdminAPI
	viewer Viewer
	now    Clock
	loc    *time.Location
}

// NewMembers creates the member admin container. Ban expiry is computed in
// loc from now.
func NewMembers(api MemberAdminAPI, viewer Viewer, now Clock, loc *time.Location) *Members {
	if loc == nil {
		loc = time.Local
	}
	return &Members{
		Container: NewContainer("Members", MembersState{}, reduceMembers),
		api:       api,
		viewer:    viewer,
		now:       now,
		loc:       loc,
	}
}

// Load fetches every member.
func (m *Members) Load(ctx context.Context) MembersState {
	t := m.Begin("members", FetchStart{})
	members, err := m.api.List(ctx)
	if err != nil {
		logger.Warn.Printf("[Members.Load] %v", err)
		m.Resolve(t, FetchError{Message: messageFor(err, "Failed to load the member list.", nil)})
		return m.State()
	}
	m.Resolve(t, FetchSuccess[[]models.Member]{Payload: members})
	return m.State()
}

func (m *Members) find(id int64) (models.Member, bool) {
	for _, mem := range m.State().Members {
		if mem.ID == id {
			return mem, true
		}
	}
	return models.Member{}, false
}

func (m *Members) sync(ctx context.Context, op Op, action Action) {
	policy := MemberPolicies.For(op)
	if policy.splices() && action != nil {
		m.Dispatch(action)
	}
	if policy.refetches() {
		m.Load(ctx)
	}
}

// StartEdit opens the edit modal for id.
func (m *Members) StartEdit(id int64) MembersState {
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	mem, ok := m.find(id)
	if !ok {
		return m.Dispatch(SetMessage{Message: "The member no longer exists."})
	}
	return m.Dispatch(StartMemberEdit{Member: mem})
}

// CancelEdit closes the edit modal.
func (m *Members) CancelEdit() MembersState {
	return m.Dispatch(CloseMemberEdit{})
}

// Update saves the edit modal. A conflict shows the server's duplicate-field
// message.
func (m *Members) Update(ctx context.Context, id int64, member models.Member) MembersState {
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	member.ID = id
	saved, err := m.api.Update(ctx, id, member)
	if err != nil {
		logger.Warn.Printf("[Members.Update] member %d: %v", id, err)
		return m.Dispatch(SetMessage{Message: messageFor(err, "Failed to update the member.", nil)})
	}
	m.Dispatch(CloseMemberEdit{})
	m.sync(ctx, OpUpdate, MemberSpliced{Member: *saved})
	return m.Dispatch(SetMessage{Message: "The member was updated."})
}

// RequestDelete opens the delete confirmation for id.
func (m *Members) RequestDelete(id int64) MembersState {
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	mem, ok := m.find(id)
	if !ok {
		return m.Dispatch(SetMessage{Message: "The member no longer exists."})
	}
	return m.Dispatch(OpenConfirm[int64]{Target: id, Prompt: "Delete member " + mem.Username + "?"})
}

// CancelDelete closes the delete confirmation.
func (m *Members) CancelDelete() MembersState {
	return m.Dispatch(CloseConfirm{})
}

var adminProtected = map[int]string{http.StatusForbidden: MsgAdminProtected}

// ConfirmDelete deletes the pending member and reloads.
func (m *Members) ConfirmDelete(ctx context.Context) MembersState {
	st := m.State()
	if !st.Delete.Open {
		return st
	}
	m.Dispatch(CloseConfirm{})
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	id := st.Delete.Target
	if err := m.api.Delete(ctx, id); err != nil {
		logger.Warn.Printf("[Members.ConfirmDelete] member %d: %v", id, err)
		return m.Dispatch(SetMessage{Message: messageFor(err, "Failed to delete the member.", adminProtected)})
	}
	m.sync(ctx, OpDelete, nil)
	return m.Dispatch(SetMessage{Message: "The member was deleted."})
}

// OpenBan opens the ban dialog for username.
func (m *Members) OpenBan(username string) MembersState {
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	return m.Dispatch(OpenBan{Username: username})
}

// CancelBan closes the ban dialog.
func (m *Members) CancelBan() MembersState {
	return m.Dispatch(CloseBan{})
}

// ParseBanDays validates the day count of a temporary ban.
func ParseBanDays(raw string) (int, bool) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// ConfirmBan bans the dialog's member for the chosen duration and reloads.
// An invalid day count keeps the dialog open.
func (m *Members) ConfirmBan(ctx context.Context, choice BanChoice) MembersState {
	st := m.State()
	if !st.Ban.Open {
		return st
	}
	if !m.viewer.IsAdmin() {
		return m.Dispatch(CloseBan{}, SetMessage{Message: MsgAdminOnly})
	}
	username := st.Ban.Target

	var err error
	if choice.Permanent {
		err = m.api.BanPermanently(ctx, username)
	} else {
		days, ok := ParseBanDays(choice.Days)
		if !ok {
			return m.Dispatch(SetMessage{Message: "Please enter a positive number of days."})
		}
		err = m.api.BanUntil(ctx, username, derive.BanExpiry(m.now(), days, m.loc))
	}
	m.Dispatch(CloseBan{})
	if err != nil {
		logger.Warn.Printf("[Members.ConfirmBan] %s: %v", username, err)
		return m.Dispatch(SetMessage{Message: messageFor(err, "Failed to ban the member.", adminProtected)})
	}
	logger.Info.Printf("[Members.ConfirmBan] %s banned (permanent=%t)", username, choice.Permanent)
	m.sync(ctx, OpBan, nil)
	return m.Dispatch(SetMessage{Message: username + " was banned."})
}

// Unban lifts username's ban and reloads.
func (m *Members) Unban(ctx context.Context, username string) MembersState {
	if !m.viewer.IsAdmin() {
		return m.Dispatch(SetMessage{Message: MsgAdminOnly})
	}
	if err := m.api.Unban(ctx, username); err != nil {
		logger.Warn.Printf("[Members.Unban] %s: %v", username, err)
		return m.Dispatch(SetMessage{Message: messageFor(err, "Failed to unban the member.", nil)})
	}
	m.sync(ctx, OpUnban, nil)
	return m.Dispatch(SetMessage{Message: username + " was unbanned."})
}
