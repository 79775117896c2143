// File: models/member.go
package models

// Roles reported by the backend. Some deployments prefix them with ROLE_.
const (
	RoleUser     = "USER"
	RoleAdmin    = "ADMIN"
	RolePrefixed = "ROLE_ADMIN"
)

// SessionUser is the identity returned by /auth/status and /auth/login.
type SessionUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Nickname string `json:"nickname"`
	Token    string `json:"token,omitempty"`
}

// IsAdmin reports whether the role grants administrative access.
func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RolePrefixed
}

// Member is an account as seen by administrators and by its owner.
type Member struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Nickname    string     `json:"nickname"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Role        string     `json:"role"`
	Banned      bool       `json:"banned"`
	BannedUntil *LocalTime `json:"bannedUntil"`
}

// PermanentlyBanned reports a ban with no expiry.
func (m Member) PermanentlyBanned() bool {
	return m.Banned && (m.BannedUntil == nil || m.BannedUntil.IsZero())
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin || m.Role == RolePrefixed
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// MemberUpdateRequest edits the caller's own profile.
type MemberUpdateRequest struct {
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// PasswordChangeRequest rotates the caller's password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// MemberDeleteRequest confirms account removal with the password.
type MemberDeleteRequest struct {
	Password string `json:"password"`
}

// TempBanRequest is the body of a time-limited ban.
type TempBanRequest struct {
	Username    string `json:"username"`
	BannedUntil string `json:"bannedUntil"`
}

// UnbanRequest lifts a ban.
type UnbanRequest struct {
	Username string `json:"username"`
}
