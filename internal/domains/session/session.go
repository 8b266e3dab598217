// Package session ties the lifecycle of the per-session stores together:
// the cart, the auth session and the view state start lazily on first use
// and end here.
package session

import (
	"context"
	"errors"
	"time"

	authService "bookstore-storefront/internal/domains/auth/service"
	"bookstore-storefront/internal/domains/book/view"
	cartModel "bookstore-storefront/internal/domains/cart/model"
	cartService "bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	carts  cartService.ServiceInterface
	auth   authService.ServiceInterface
	views  *view.Registry
	cookie middleware.SessionMiddlewareConfig
}

func NewManager(carts cartService.ServiceInterface, auth authService.ServiceInterface, views *view.Registry, cookie middleware.SessionMiddlewareConfig) *Manager {
	return &Manager{carts: carts, auth: auth, views: views, cookie: cookie}
}

// End tears down every store of the session. All teardowns run even when
// one of them fails.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	m.views.Drop(sessionID)
	cartErr := m.carts.Teardown(ctx, sessionID)
	authErr := m.auth.Logout(ctx, sessionID)
	return errors.Join(cartErr, authErr)
}

// Rotate moves the session to newID after login. The cart follows the
// user; view state and any auth bound to oldID are dropped.
func (m *Manager) Rotate(ctx context.Context, oldID, newID string) error {
	if oldID == "" {
		return nil
	}
	m.views.Drop(oldID)
	cartErr := m.carts.Rekey(ctx, oldID, newID)
	authErr := m.auth.Logout(ctx, oldID)
	return errors.Join(cartErr, authErr)
}

// Sweep evicts in-memory state of sessions idle for longer than maxIdle.
// Persisted carts and auth sessions stay in the cache until their TTL.
func (m *Manager) Sweep(maxIdle time.Duration) {
	carts := m.carts.Sweep(maxIdle)
	views := m.views.Sweep(maxIdle)
	if carts > 0 || views > 0 {
		logger.Debug("idle sessions swept", map[string]interface{}{
			"carts": carts,
			"views": views,
		})
	}
}

// EndSession - DELETE /session
func (m *Manager) EndSession(c *gin.Context) {
	err := m.End(c.Request.Context(), middleware.GetSessionID(c))
	middleware.ClearSessionCookie(c, m.cookie)
	if cartModel.HandleCartError(c, err) {
		return
	}
	response.NoContent(c)
}
