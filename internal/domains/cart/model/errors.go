package model

import (
	"errors"
	"net/http"

	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrCartFull        = errors.New("cart is full")
	ErrSnapshotMiss    = errors.New("cart snapshot not found")
	ErrCartStorage     = errors.New("cart storage error")
)

var cartErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrSessionRequired: {Status: http.StatusBadRequest, Code: "SESSION_REQUIRED", Message: "A browsing session is required"},
	ErrCartFull:        {Status: http.StatusConflict, Code: "CART_FULL", Message: "Your cart cannot hold more items"},
	ErrCartStorage:     {Status: http.StatusServiceUnavailable, Code: "CART_UNAVAILABLE", Message: "Your cart is temporarily unavailable"},
}

// HandleCartError writes the response for err and reports whether err was non-nil.
func HandleCartError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	for target, cfg := range cartErrorMap {
		if errors.Is(err, target) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}
	logger.Error("unhandled cart error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
