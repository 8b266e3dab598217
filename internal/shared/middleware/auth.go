package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const ContextKeyUserID = "user_id"

// UserResolver returns the id of the user logged in on a browsing session.
type UserResolver func(ctx context.Context, sessionID string) (userID string, ok bool)

// AuthMiddleware puts the logged-in user id into the context. Anonymous
// sessions pass through untouched; the storefront is browsable without login.
func AuthMiddleware(resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := GetSessionID(c)
		if sessionID != "" {
			if userID, ok := resolve(c.Request.Context(), sessionID); ok {
				c.Set(ContextKeyUserID, userID)
			}
		}
		c.Next()
	}
}

// GetUserID returns the logged-in user id, or "" for anonymous sessions.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}
