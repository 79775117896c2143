// file: viewstate/login.go
package viewstate

import (
	"context"
	"net/http"
	"strings"

	"go-ballpark/logger"
	"go-ballpark/models"
)

// Authenticator is the write side of the session store.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.SessionUser, error)
	Logout(ctx context.Context) error
	Reset()
}

// LoginState is the login form.
type LoginState struct {
	Status
	Username string
	// User is set once the login succeeded.
	User *models.SessionUser
}

// Login actions.
type (
	LoginAttempt   struct{ Username string }
	LoginSucceeded struct{ User models.SessionUser }
	LoggedOut      struct{}
)

func (LoginAttempt) isAction()   {}
func (LoginSucceeded) isAction() {}
func (LoggedOut) isAction()      {}

func reduceLogin(s LoginState, a Action) LoginState {
	if st, ok := reduceStatus(s.Status, a); ok {
		s.Status = st
		return s
	}
	switch a := a.(type) {
	case LoginAttempt:
		s.Username = a.Username
		s.User = nil
	case LoginSucceeded:
		u := a.User
		s.User = &u
	case LoggedOut:
		s.User = nil
		s.Username = ""
	default:
		return unhandled("Login", s, a)
	}
	return s
}

// Login drives the login form and logout.
type Login struct {
	*Container[LoginState]
	auth Authenticator
}

// NewLogin creates the login container.
func NewLogin(auth Authenticator) *Login {
	return &Login{
		Container: NewContainer("Login", LoginState{}, reduceLogin),
		auth:      auth,
	}
}

// Submit signs in. On failure the form stays put with a message.
func (l *Login) Submit(ctx context.Context, username, password string) LoginState {
	username = strings.TrimSpace(username)
	l.Dispatch(LoginAttempt{Username: username}, ClearMessage{})
	if username == "" || password == "" {
		return l.Dispatch(SetMessage{Message: "Please enter your username and password."})
	}
	l.Dispatch(ActionStart{})
	user, err := l.auth.Login(ctx, username, password)
	if err != nil {
		logger.Warn.Printf("[Login.Submit] %s: %v", username, err)
		msg := messageFor(err, MsgInvalidCredentials, map[int]string{
			http.StatusUnauthorized: MsgInvalidCredentials,
			http.StatusForbidden:    "This account is banned.",
		})
		return l.Dispatch(ActionDone{}, SetMessage{Message: msg})
	}
	return l.Dispatch(ActionDone{}, LoginSucceeded{User: *user})
}

// Logout ends the session. A failed backend call is reported but the local
// session is reset anyway.
func (l *Login) Logout(ctx context.Context) LoginState {
	if err := l.auth.Logout(ctx); err != nil {
		logger.Warn.Printf("[Login.Logout] %v", err)
		l.auth.Reset()
		return l.Dispatch(LoggedOut{}, SetMessage{Message: messageFor(err, "Logout failed on the server; you were signed out locally.", nil)})
	}
	return l.Dispatch(LoggedOut{}, SetMessage{Message: "You have been logged out."})
}
