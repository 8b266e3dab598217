package service

import (
	"context"
	"time"

	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/domains/cart/store"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	// Open returns the session's cart, restoring it from the repository or
	// creating an empty one (session start).
	Open(ctx context.Context, sessionID string) (*store.Store, error)

	// Mutate runs fn against the session's store with exclusive access and
	// persists the cart when fn changed it. op names the mutation for metrics.
	Mutate(ctx context.Context, sessionID, op string, fn func(*store.Store) error) (*model.CartResponse, error)

	GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, item model.NewItem) (*model.CartResponse, error)
	RemoveBook(ctx context.Context, sessionID, bookID string) (*model.RemoveResponse, error)
	RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (*model.RemoveResponse, error)
	UpdateQuantity(ctx context.Context, sessionID, bookID string, quantity int) (*model.CartResponse, error)
	Clear(ctx context.Context, sessionID string) (*model.CartResponse, error)

	// ItemCount feeds the navbar badge.
	ItemCount(ctx context.Context, sessionID string) (int, error)

	// Teardown drops the session cart from memory and storage (session end).
	Teardown(ctx context.Context, sessionID string) error

	// Rekey moves the cart to a new session id and deletes the old snapshot.
	Rekey(ctx context.Context, oldID, newID string) error

	// Sweep evicts carts idle for longer than maxIdle from memory only;
	// they are restored from the repository on next use.
	Sweep(maxIdle time.Duration) int
}
