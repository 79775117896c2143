// file: api/members.go
package api

import (
	"context"
	"net/http"
	"time"

	"go-ballpark/models"
)

// AdminMemberService covers /admin/members.
type AdminMemberService struct{ c *Client }

func (s *AdminMemberService) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := s.c.do(ctx, request{op: "adminMembers.list", method: http.MethodGet, path: "/admin/members"}, &members)
	return members, err
}

func (s *AdminMemberService) Get(ctx context.Context, username string) (*models.Member, error) {
	var member models.Member
	if err := s.c.do(ctx, request{op: "adminMembers.get", method: http.MethodGet, path: idPath("/admin/members/%v", username)}, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *AdminMemberService) Update(ctx context.Context, id int64, member models.Member) (*models.Member, error) {
	var updated models.Member
	err := s.c.do(ctx, request{op: "adminMembers.update", method: http.MethodPut, path: idPath("/admin/members/%v", id), body: member}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AdminMemberService) BanPermanently(ctx context.Context, username string) error {
	return s.c.do(ctx, request{op: "adminMembers.banPermanent", method: http.MethodPost, path: idPath("/admin/members/%v/ban/permanent", username)}, nil)
}

// BanUntil bans username until the given instant, sent as UTC ISO-8601
// with milliseconds.
func (s *AdminMemberService) BanUntil(ctx context.Context, username string, until time.Time) error {
	body := models.TempBanRequest{
		Username:    username,
		BannedUntil: until.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	return s.c.do(ctx, request{op: "adminMembers.banTemp", method: http.MethodPost, path: "/admin/members/ban/temp", body: body}, nil)
}

func (s *AdminMemberService) Unban(ctx context.Context, username string) error {
	return s.c.do(ctx, request{op: "adminMembers.unban", method: http.MethodPost, path: "/admin/members/unban", body: models.UnbanRequest{Username: username}}, nil)
}

func (s *AdminMemberService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, request{op: "adminMembers.delete", method: http.MethodDelete, path: idPath("/admin/members/%v", id)}, nil)
}

// MemberService covers /members/me.
type MemberService struct{ c *Client }

func (s *MemberService) Me(ctx context.Context) (*models.Member, error) {
	var member models.Member
	if err := s.c.do(ctx, request{op: "members.me", method: http.MethodGet, path: "/members/me"}, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) Update(ctx context.Context, req models.MemberUpdateRequest) (*models.Member, error) {
	var updated models.Member
	if err := s.c.do(ctx, request{op: "members.update", method: http.MethodPut, path: "/members/me", body: req}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MemberService) ChangePassword(ctx context.Context, req models.PasswordChangeRequest) error {
	return s.c.do(ctx, request{op: "members.password", method: http.MethodPut, path: "/members/me/password", body: req}, nil)
}

// Delete removes the caller's account; the body carries the password.
func (s *MemberService) Delete(ctx context.Context, req models.MemberDeleteRequest) error {
	return s.c.do(ctx, request{op: "members.delete", method: http.MethodDelete, path: "/members/me", body: req}, nil)
}
