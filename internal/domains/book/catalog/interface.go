package catalog

import (
	"context"

	"bookstore-storefront/internal/domains/book/model"
)

// Client reads the external catalog API. Returned prices are raw; callers
// round them.
type Client interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, term string) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
}
