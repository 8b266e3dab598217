package model

import (
	"errors"
	"net/http"

	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAuthUnavailable    = errors.New("auth service unavailable")
	ErrSessionMiss        = errors.New("auth session not found")
	ErrSessionRequired    = errors.New("session id is required")
	ErrAuthStorage        = errors.New("auth storage error")
)

var authErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrInvalidCredentials: {Status: http.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"},
	ErrInvalidToken:       {Status: http.StatusBadGateway, Code: "INVALID_TOKEN", Message: "The auth service returned an invalid token"},
	ErrAuthUnavailable:    {Status: http.StatusBadGateway, Code: "AUTH_UNAVAILABLE", Message: "Login is temporarily unavailable"},
	ErrSessionRequired:    {Status: http.StatusBadRequest, Code: "SESSION_REQUIRED", Message: "A browsing session is required"},
	ErrAuthStorage:        {Status: http.StatusServiceUnavailable, Code: "SESSION_UNAVAILABLE", Message: "Your session is temporarily unavailable"},
}

// HandleAuthError writes the response for err and reports whether err was non-nil.
func HandleAuthError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	for target, cfg := range authErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}
	logger.Error("unhandled auth error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
