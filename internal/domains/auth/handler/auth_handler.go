package handler

import (
	"context"
	"net/http"

	"bookstore-storefront/internal/domains/auth/model"
	"bookstore-storefront/internal/domains/auth/service"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/internal/shared/request"
	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionRotator carries per-session state over to a new session id.
type SessionRotator interface {
	Rotate(ctx context.Context, oldID, newID string) error
}

type AuthHandler struct {
	service  service.ServiceInterface
	sessions SessionRotator
	cookie   middleware.SessionMiddlewareConfig
}

func NewAuthHandler(s service.ServiceInterface, sessions SessionRotator, cookie middleware.SessionMiddlewareConfig) *AuthHandler {
	return &AuthHandler{service: s, sessions: sessions, cookie: cookie}
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	// STEP 1: PARSE + VALIDATE
	var req model.LoginRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	// STEP 2: AUTHENTICATE UNDER A FRESH SESSION ID
	ctx := c.Request.Context()
	newID := uuid.New().String()
	session, err := h.service.Login(ctx, newID, req)
	if model.HandleAuthError(c, err) {
		return
	}

	// STEP 3: MOVE THE CART OVER AND REISSUE THE COOKIE
	oldID := middleware.ReplaceSessionID(c, newID, h.cookie)
	if err := h.sessions.Rotate(ctx, oldID, newID); err != nil {
		logger.Warn("session rotation incomplete", map[string]interface{}{
			"session_id": newID,
			"error":      err.Error(),
		})
	}

	response.Success(c, http.StatusOK, model.NewSessionResponse(*session))
}

// Logout - POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if model.HandleAuthError(c, h.service.Logout(c.Request.Context(), middleware.GetSessionID(c))) {
		return
	}
	response.Success(c, http.StatusOK, model.NewSessionResponse(model.Session{}))
}

// Me - GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session := h.service.Current(c.Request.Context(), middleware.GetSessionID(c))
	response.Success(c, http.StatusOK, model.NewSessionResponse(session))
}
