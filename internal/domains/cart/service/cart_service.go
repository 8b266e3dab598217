package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bookstore-storefront/internal/domains/cart/model"
	repo "bookstore-storefront/internal/domains/cart/repository"
	"bookstore-storefront/internal/domains/cart/store"
	"bookstore-storefront/pkg/logger"
	"bookstore-storefront/pkg/metrics"

	"github.com/google/uuid"
)

// sessionCart is restored lazily under its own mutex, so a slow
// repository read only holds up requests of the same session.
// closed marks an entry that was torn down, swept or rekeyed; holders
// of a closed entry start over with a fresh lookup.
type sessionCart struct {
	mu       sync.Mutex
	store    *store.Store
	closed   bool
	lastSeen time.Time
}

// CartService owns one store per browsing session. Stores are kept in
// memory and written through to the repository after every mutation.
//
// Lock order: sessionCart.mu before CartService.mu. CartService.mu is
// never held across repository calls.
type CartService struct {
	repository repo.RepositoryInterface
	metrics    *metrics.StorefrontMetrics
	now        func() time.Time

	mu    sync.Mutex
	carts map[string]*sessionCart
}

func NewCartService(r repo.RepositoryInterface, m *metrics.StorefrontMetrics) ServiceInterface {
	return &CartService{
		repository: r,
		metrics:    m,
		now:        time.Now,
		carts:      make(map[string]*sessionCart),
	}
}

func (s *CartService) entry(sessionID string) *sessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.carts[sessionID]
	if !ok {
		sc = &sessionCart{}
		s.carts[sessionID] = sc
	}
	sc.lastSeen = s.now()
	return sc
}

// forget drops sc from the registry unless the slot was already reused.
func (s *CartService) forget(sessionID string, sc *sessionCart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts[sessionID] == sc {
		delete(s.carts, sessionID)
	}
}

// acquire returns the session's cart with sc.mu held, restoring it from
// the repository on first use. The caller unlocks.
func (s *CartService) acquire(ctx context.Context, sessionID string) (*sessionCart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, model.ErrSessionRequired
	}

	for {
		sc := s.entry(sessionID)
		sc.mu.Lock()
		if sc.closed {
			sc.mu.Unlock()
			continue
		}
		if sc.store == nil {
			sc.store = s.restore(ctx, sessionID)
		}
		return sc, nil
	}
}

func (s *CartService) restore(ctx context.Context, sessionID string) *store.Store {
	snap, err := s.repository.Load(ctx, sessionID)
	switch {
	case err == nil:
		return store.FromSnapshot(*snap)
	case errors.Is(err, model.ErrSnapshotMiss):
		// new session, empty cart
	default:
		// storage outage: serve an empty in-memory cart rather than failing the page
		logger.Warn("cart restore failed, starting empty", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return store.New()
}

func (s *CartService) Open(ctx context.Context, sessionID string) (*store.Store, error) {
	sc, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer sc.mu.Unlock()
	return sc.store, nil
}

func (s *CartService) Mutate(ctx context.Context, sessionID, op string, fn func(*store.Store) error) (*model.CartResponse, error) {
	sc, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer sc.mu.Unlock()

	before := sc.store.Version()
	fnErr := fn(sc.store)

	if sc.store.Version() != before {
		s.metrics.IncCartMutation(op)
		s.persist(ctx, sessionID, sc.store, op)
	}
	if fnErr != nil {
		return nil, fnErr
	}

	resp := sc.store.Response()
	return &resp, nil
}

func (s *CartService) persist(ctx context.Context, sessionID string, st *store.Store, op string) {
	if err := s.repository.Save(ctx, st.Snapshot(sessionID)); err != nil {
		logger.Warn("cart persist failed", map[string]interface{}{
			"session_id": sessionID,
			"op":         op,
			"error":      err.Error(),
		})
	}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	st, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := st.Response()
	return &resp, nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, item model.NewItem) (*model.CartResponse, error) {
	return s.Mutate(ctx, sessionID, model.OpAdd, func(st *store.Store) error {
		_, err := st.AddItem(item)
		return err
	})
}

func (s *CartService) RemoveBook(ctx context.Context, sessionID, bookID string) (*model.RemoveResponse, error) {
	var removed bool
	cart, err := s.Mutate(ctx, sessionID, model.OpRemove, func(st *store.Store) error {
		removed = st.RemoveBook(bookID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.RemoveResponse{Removed: removed, Cart: *cart}, nil
}

func (s *CartService) RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (*model.RemoveResponse, error) {
	var removed bool
	cart, err := s.Mutate(ctx, sessionID, model.OpRemove, func(st *store.Store) error {
		removed = st.RemoveLine(lineID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model.RemoveResponse{Removed: removed, Cart: *cart}, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, bookID string, quantity int) (*model.CartResponse, error) {
	return s.Mutate(ctx, sessionID, model.OpUpdate, func(st *store.Store) error {
		_, err := st.UpdateQuantity(bookID, quantity)
		return err
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	return s.Mutate(ctx, sessionID, model.OpClear, func(st *store.Store) error {
		st.Clear()
		return nil
	})
}

func (s *CartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	st, err := s.Open(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return st.TotalItems(), nil
}

// Teardown waits for any in-flight mutation of the session, then removes
// the cart from memory and storage. The entry stays registered while the
// snapshot is deleted so that concurrent requests cannot restore it.
func (s *CartService) Teardown(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return model.ErrSessionRequired
	}

	sc := s.entry(sessionID)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.closed = true
	err := s.repository.Delete(ctx, sessionID)
	s.forget(sessionID, sc)
	return err
}

// Rekey moves the cart of oldID to newID, used when login rotates the
// session id. The old snapshot is deleted.
func (s *CartService) Rekey(ctx context.Context, oldID, newID string) error {
	if strings.TrimSpace(newID) == "" || oldID == newID {
		return model.ErrSessionRequired
	}

	sc, err := s.acquire(ctx, oldID)
	if err != nil {
		return err
	}
	defer sc.mu.Unlock()

	moved := &sessionCart{store: sc.store, lastSeen: s.now()}
	if !sc.store.IsEmpty() {
		s.persist(ctx, newID, sc.store, model.OpRekey)
	}

	s.mu.Lock()
	s.carts[newID] = moved
	s.mu.Unlock()

	sc.closed = true
	err = s.repository.Delete(ctx, oldID)
	s.forget(oldID, sc)
	return err
}

func (s *CartService) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sc := range s.carts {
		if !sc.lastSeen.Before(cutoff) {
			continue
		}
		// busy entries are in use; the next sweep gets them
		if !sc.mu.TryLock() {
			continue
		}
		sc.closed = true
		delete(s.carts, id)
		sc.mu.Unlock()
		evicted++
	}
	return evicted
}
