// file: api/token.go
package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token holds an optional bearer token. The backend signs it; the client only
// reads its expiry so an expired token is not sent.
type Token struct {
	mu  sync.RWMutex
	raw string
	exp time.Time
}

// Set replaces the token. An empty string clears it.
func (t *Token) Set(raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raw = raw
	t.exp = time.Time{}
	if raw == "" {
		return
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		// opaque tokens are sent as-is with no known expiry
		return
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		t.exp = exp.Time
	}
}

// Bearer returns the token to send at now, or "" when absent or expired.
func (t *Token) Bearer(now time.Time) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.raw == "" {
		return ""
	}
	if !t.exp.IsZero() && !now.Before(t.exp) {
		return ""
	}
	return t.raw
}
