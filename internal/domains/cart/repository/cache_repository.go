package repository

import (
	"context"
	"fmt"
	"time"

	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/pkg/cache"
)

// CacheRepository keeps one JSON snapshot per session in the shared cache,
// expiring together with the session cookie.
type CacheRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewCacheRepository(c cache.Cache, ttl time.Duration) RepositoryInterface {
	if ttl <= 0 {
		ttl = model.DefaultCartTTL
	}
	return &CacheRepository{cache: c, ttl: ttl}
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf(model.CacheKeyCartBySession, sessionID)
}

func (r *CacheRepository) Load(ctx context.Context, sessionID string) (*model.Snapshot, error) {
	var snap model.Snapshot
	found, err := r.cache.Get(ctx, cacheKey(sessionID), &snap)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", model.ErrCartStorage, err)
	}
	if !found {
		return nil, model.ErrSnapshotMiss
	}
	return &snap, nil
}

func (r *CacheRepository) Save(ctx context.Context, snap model.Snapshot) error {
	if err := r.cache.Set(ctx, cacheKey(snap.SessionID), snap, r.ttl); err != nil {
		return fmt.Errorf("%w: save: %v", model.ErrCartStorage, err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cacheKey(sessionID)); err != nil {
		return fmt.Errorf("%w: delete: %v", model.ErrCartStorage, err)
	}
	return nil
}
