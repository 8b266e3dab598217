package repository

import (
	"context"

	"bookstore-storefront/internal/domains/cart/model"
)

// RepositoryInterface persists session carts between requests and restarts.
type RepositoryInterface interface {
	// Load returns model.ErrSnapshotMiss when the session has no saved cart.
	Load(ctx context.Context, sessionID string) (*model.Snapshot, error)
	Save(ctx context.Context, snap model.Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}
