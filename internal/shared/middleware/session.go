package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================================
// CONSTANTS
// ===================================

const (
	// Cookie settings
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	// Context keys
	ContextKeySessionID  = "session_id"
	ContextKeyNewSession = "is_new_session"
)

// ===================================
// MIDDLEWARE CONFIGURATION
// ===================================

// SessionMiddlewareConfig holds the session cookie settings
type SessionMiddlewareConfig struct {
	CookieDomain   string // "" for current domain
	CookiePath     string
	CookieSecure   bool // true for HTTPS only
	CookieSameSite http.SameSite
	MaxAge         int // seconds
}

// DefaultSessionMiddlewareConfig returns secure default configuration
func DefaultSessionMiddlewareConfig() SessionMiddlewareConfig {
	return SessionMiddlewareConfig{
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
		MaxAge:         SessionMaxAge,
	}
}

// ===================================
// SESSION MIDDLEWARE
// ===================================

// SessionMiddleware identifies the browsing session every cart and auth
// operation is scoped to.
//
// Flow:
// 1. Read session_id cookie; accept it only if it is a UUID
// 2. Otherwise generate a new UUID and set the cookie
// 3. Put session_id into the gin context for handlers
func SessionMiddleware(config SessionMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := getSessionID(c)
		isNew := false
		if sessionID == "" {
			sessionID = uuid.New().String()
			setSessionCookie(c, sessionID, config)
			isNew = true
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Set(ContextKeyNewSession, isNew)
		c.Next()
	}
}

// ===================================
// HELPER FUNCTIONS
// ===================================

func getSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return ""
	}

	// Validate UUID format for security
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}

	return sessionID
}

func setSessionCookie(c *gin.Context, sessionID string, config SessionMiddlewareConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		config.MaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true, // httpOnly
	)
}

// ReplaceSessionID moves the request and the browser to newID and returns
// the previous id. Login uses it so that a session id planted before
// authentication never becomes authenticated.
func ReplaceSessionID(c *gin.Context, newID string, config SessionMiddlewareConfig) string {
	oldID := GetSessionID(c)
	setSessionCookie(c, newID, config)
	c.Set(ContextKeySessionID, newID)
	return oldID
}

// ClearSessionCookie expires the session cookie (session end).
func ClearSessionCookie(c *gin.Context, config SessionMiddlewareConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(SessionCookieName, "", -1, config.CookiePath, config.CookieDomain, config.CookieSecure, true)
}

// ===================================
// CONTEXT HELPERS FOR HANDLERS
// ===================================

// GetSessionID retrieves session ID from context
func GetSessionID(c *gin.Context) string {
	sessionID, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}

	sid, ok := sessionID.(string)
	if !ok {
		return ""
	}

	return sid
}

// IsNewSession reports whether this request started the session.
func IsNewSession(c *gin.Context) bool {
	return c.GetBool(ContextKeyNewSession)
}
