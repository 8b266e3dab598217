package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bookstore-storefront/internal/domains/book/catalog"
	"bookstore-storefront/internal/domains/book/model"
	cartModel "bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/domains/cart/store"
	"bookstore-storefront/pkg/logger"
)

// BookService - Implements ServiceInterface on top of the catalog client
type BookService struct {
	catalog catalog.Client
}

// NewService - Constructor with DI
func NewService(c catalog.Client) ServiceInterface {
	return &BookService{catalog: c}
}

// ListBooks fetches the catalog (or the search endpoint when q carries a
// term) and runs the result through ApplyPipeline.
func (s *BookService) ListBooks(ctx context.Context, q model.ListQuery) (*model.ListingResult, error) {
	q = q.Normalize()

	var (
		books []model.Book
		err   error
	)
	if q.IsSearch() {
		books, err = s.catalog.SearchBooks(ctx, q.Search)
	} else {
		books, err = s.catalog.ListBooks(ctx)
	}
	if err != nil {
		logger.Warn("catalog listing failed", map[string]interface{}{
			"search":  q.Search,
			"bracket": string(q.Bracket),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("list books: %w", err)
	}

	return model.NewListingResult(q, ApplyPipeline(books, q)), nil
}

// GetBookDetail - GET /api/books/:id with the price rounded
func (s *BookService) GetBookDetail(ctx context.Context, id string) (*model.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, model.ErrInvalidBookID
	}

	book, err := s.catalog.GetBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}

	rounded := book.WithRoundedPrice()
	return &rounded, nil
}

// AddToCart appends quantity independent line items for book, so the cart
// page later shows the book with that many repetitions.
func (s *BookService) AddToCart(st *store.Store, book model.Book, quantity int) (string, error) {
	if !book.InStock() {
		return "", model.ErrOutOfStock
	}
	if quantity < 1 || quantity > book.Stock {
		return "", model.ErrInvalidQuantity
	}

	item := cartModel.NewItem{
		BookID:    book.ID,
		Title:     book.Title,
		Price:     book.Price,
		Thumbnail: book.Thumbnail,
	}
	if _, err := st.AddCopies(item, quantity); err != nil {
		return "", err
	}
	return model.CartPath, nil
}

// ApplyPipeline rounds prices, filters by bracket, optionally sorts by stock
// and truncates to the limit. books is not modified.
func ApplyPipeline(books []model.Book, q model.ListQuery) []model.Book {
	q = q.Normalize()

	rounded := make([]model.Book, len(books))
	for i, b := range books {
		rounded[i] = b.WithRoundedPrice()
	}

	out := FilterByBracket(rounded, q.Bracket)
	if q.Featured {
		SortFeatured(out)
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// FilterByBracket keeps the books whose (already rounded) price falls in b.
func FilterByBracket(books []model.Book, b model.PriceBracket) []model.Book {
	out := make([]model.Book, 0, len(books))
	for _, book := range books {
		if b.Contains(book.Price) {
			out = append(out, book)
		}
	}
	return out
}

// SortFeatured orders books by stock, highest first. Ties keep catalog order.
func SortFeatured(books []model.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Stock > books[j].Stock
	})
}
