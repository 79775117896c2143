// file: viewstate/messages.go
package viewstate

import (
	"net/http"

	"go-ballpark/api"
)

// User-facing messages shared by several screens.
const (
	MsgNetwork            = "Unable to reach the server. Please check your connection."
	MsgInvalidCredentials = "Invalid username or password."
	MsgAdminProtected     = "This operation is not permitted on admin accounts."
	MsgDuplicate          = "Duplicate value: the nickname, email or phone number is already in use."
	MsgNotPermitted       = "You do not have permission to perform this action."
	MsgLoginRequired      = "Please log in to continue."
	MsgAdminOnly          = "Only administrators can do that."
)

// messageFor maps a failed call to a notification. overrides win over the
// shared mapping; fallback covers everything else.
func messageFor(err error, fallback string, overrides map[int]string) string {
	if err == nil {
		return ""
	}
	if api.IsNetwork(err) {
		return MsgNetwork
	}
	status := api.StatusOf(err)
	if msg, ok := overrides[status]; ok {
		return msg
	}
	switch status {
	case http.StatusConflict:
		return api.ServerMessage(err, MsgDuplicate)
	case http.StatusForbidden:
		return MsgNotPermitted
	case http.StatusUnauthorized:
		return MsgLoginRequired
	}
	return fallback
}
