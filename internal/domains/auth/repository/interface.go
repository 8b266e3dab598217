package repository

import (
	"context"
	"time"

	"bookstore-storefront/internal/domains/auth/model"
)

// RepositoryInterface stores auth sessions keyed by browsing session.
type RepositoryInterface interface {
	// Load returns model.ErrSessionMiss when nobody is logged in.
	Load(ctx context.Context, sessionID string) (*model.Session, error)
	Save(ctx context.Context, s model.Session, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
