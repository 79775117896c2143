// file: api/auth.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"go-ballpark/models"
)

// AuthService covers /auth.
type AuthService struct{ c *Client }

// Login posts form-encoded credentials. A token in the response is kept for
// later calls.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.SessionUser, error) {
	var user models.SessionUser
	err := s.c.do(ctx, request{
		op:     "auth.login",
		method: http.MethodPost,
		path:   "/auth/login",
		form:   url.Values{"username": {username}, "password": {password}},
	}, &user)
	if err != nil {
		return nil, err
	}
	if user.Token != "" {
		s.c.token.Set(user.Token)
	}
	return &user, nil
}

// Logout ends the backend session and forgets the bearer token.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.c.do(ctx, request{op: "auth.logout", method: http.MethodPost, path: "/auth/logout"}, nil)
	s.c.token.Set("")
	return err
}

// Register creates an account and returns the backend's confirmation text.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var msg string
	err := s.c.do(ctx, request{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: req}, &msg)
	return msg, err
}

// Status returns the identity bound to the current backend session.
func (s *AuthService) Status(ctx context.Context) (*models.SessionUser, error) {
	var user models.SessionUser
	if err := s.c.do(ctx, request{op: "auth.status", method: http.MethodGet, path: "/auth/status"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether username is taken.
func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.c.do(ctx, request{
		op:     "auth.checkUsername",
		method: http.MethodGet,
		path:   "/auth/check-username",
		query:  url.Values{"username": {username}},
	}, &exists)
	return exists, err
}

// EmailExists reports whether email is taken.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.c.do(ctx, request{
		op:     "auth.checkEmail",
		method: http.MethodGet,
		path:   "/auth/check-email",
		query:  url.Values{"email": {email}},
	}, &exists)
	return exists, err
}
