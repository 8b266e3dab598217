package model

import (
	"strings"

	"bookstore-storefront/internal/shared/utils"
)

const (
	UnknownAuthor      = "Unknown Author"
	NoDescriptionText  = "No description available."
	NoImageText        = "No image available"
	BooksPath          = "/books"
	CartPath           = "/cart"
	bookDetailPathBase = "/books/"
)

// Book is a catalog record as returned by the catalog API. Read-only.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Stock       int      `json:"stock"`
}

// WithRoundedPrice returns a copy of b whose price is rounded to cents.
func (b Book) WithRoundedPrice() Book {
	b.Price = utils.RoundPrice(b.Price)
	return b
}

// InStock reports whether at least one copy can be added to the cart.
func (b Book) InStock() bool {
	return b.Stock > 0
}

// PrimaryAuthor returns the first listed author.
func (b Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 || strings.TrimSpace(b.Authors[0]) == "" {
		return UnknownAuthor
	}
	return b.Authors[0]
}

// AuthorLine joins all authors for the detail page.
func (b Book) AuthorLine() string {
	if len(b.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(b.Authors, ", ")
}

func (b Book) DisplayDescription() string {
	if strings.TrimSpace(b.Description) == "" {
		return NoDescriptionText
	}
	return b.Description
}

// DetailPath is the link target of a book card.
func (b Book) DetailPath() string {
	return bookDetailPathBase + b.ID
}

// BookCard is the JSON shape of one card in the listing grid.
type BookCard struct {
	Book
	PrimaryAuthor  string `json:"primary_author"`
	FormattedPrice string `json:"formatted_price"`
	DetailPath     string `json:"detail_path"`
	InStock        bool   `json:"in_stock"`
}

func NewBookCard(b Book) BookCard {
	return BookCard{
		Book:           b,
		PrimaryAuthor:  b.PrimaryAuthor(),
		FormattedPrice: utils.FormatPrice(b.Price),
		DetailPath:     b.DetailPath(),
		InStock:        b.InStock(),
	}
}

// BookDetailResponse is the detail page payload.
type BookDetailResponse struct {
	Book
	AuthorLine         string                `json:"author_line"`
	FormattedPrice     string                `json:"formatted_price"`
	DisplayDescription string                `json:"display_description"`
	InStock            bool                  `json:"in_stock"`
	Quantity           QuantitySelectorState `json:"quantity"`
}

func NewBookDetailResponse(b Book, qty QuantitySelectorState) BookDetailResponse {
	return BookDetailResponse{
		Book:               b,
		AuthorLine:         b.AuthorLine(),
		FormattedPrice:     utils.FormatPrice(b.Price),
		DisplayDescription: b.DisplayDescription(),
		InStock:            b.InStock(),
		Quantity:           qty,
	}
}
