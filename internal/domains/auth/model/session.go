package model

import (
	"strings"
	"time"
)

// Session is the auth state of one browsing session. The zero value is the
// logged-out state.
type Session struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"logged_in_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// Expired reports whether the access token behind the session ran out.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// FirstName is what the navbar shows next to the user icon.
func (s Session) FirstName() string {
	if f := strings.Fields(s.Name); len(f) > 0 {
		return f[0]
	}
	return ""
}
