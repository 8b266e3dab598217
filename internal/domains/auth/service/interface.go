package service

import (
	"context"

	"bookstore-storefront/internal/domains/auth/model"
)

type ServiceInterface interface {
	// Login authenticates against the auth service and binds the user to
	// the browsing session.
	Login(ctx context.Context, sessionID string, req model.LoginRequest) (*model.Session, error)

	// Logout forgets the user of the session. Logging out twice is fine.
	Logout(ctx context.Context, sessionID string) error

	// Current returns the session's auth state; the zero Session when
	// nobody is logged in.
	Current(ctx context.Context, sessionID string) model.Session
}
