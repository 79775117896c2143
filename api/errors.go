// Package api is the HTTP gateway to the ballpark REST backend.
// file: api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies how a call failed.
type Kind int

const (
	// KindRequest means the request could not be built or encoded.
	KindRequest Kind = iota
	// KindNetwork means no response was received.
	KindNetwork
	// KindServer means the backend answered with a status >= 400.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is returned by every gateway operation that fails.
type Error struct {
	Kind    Kind
	Op      string
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message)
		}
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	case KindNetwork:
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: building request: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServer {
		return apiErr.Status
	}
	return 0
}

// IsStatus reports whether err is a server error with the given status.
func IsStatus(err error, status int) bool {
	return err != nil && StatusOf(err) == status
}

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// ServerMessage returns the backend's message for err, or fallback.
func ServerMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
