package repository

import (
	"context"
	"fmt"
	"time"

	"bookstore-storefront/internal/domains/auth/model"
	"bookstore-storefront/pkg/cache"
)

type CacheRepository struct {
	cache cache.Cache
}

func NewCacheRepository(c cache.Cache) RepositoryInterface {
	return &CacheRepository{cache: c}
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf(model.CacheKeyAuthBySession, sessionID)
}

func (r *CacheRepository) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	var s model.Session
	found, err := r.cache.Get(ctx, cacheKey(sessionID), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", model.ErrAuthStorage, err)
	}
	if !found {
		return nil, model.ErrSessionMiss
	}
	return &s, nil
}

func (r *CacheRepository) Save(ctx context.Context, s model.Session, ttl time.Duration) error {
	if err := r.cache.Set(ctx, cacheKey(s.SessionID), s, ttl); err != nil {
		return fmt.Errorf("%w: save: %v", model.ErrAuthStorage, err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cacheKey(sessionID)); err != nil {
		return fmt.Errorf("%w: delete: %v", model.ErrAuthStorage, err)
	}
	return nil
}
