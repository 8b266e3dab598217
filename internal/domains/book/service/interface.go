package service

import (
	"context"

	"bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/internal/domains/cart/store"
)

// ServiceInterface - listing pipeline, detail fetch and add-to-cart
type ServiceInterface interface {
	// ListBooks runs the listing pipeline for q. An empty result is a
	// ListingResult in the empty state, not an error.
	ListBooks(ctx context.Context, q model.ListQuery) (*model.ListingResult, error)

	// GetBookDetail fetches one book with its price rounded.
	GetBookDetail(ctx context.Context, id string) (*model.Book, error)

	// AddToCart appends quantity line items for book and returns the
	// navigation target.
	AddToCart(st *store.Store, book model.Book, quantity int) (string, error)
}
