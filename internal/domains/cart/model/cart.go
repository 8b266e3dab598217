package model

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one unit-quantity entry of the cart. Title, price and
// thumbnail are copied from the catalog when the line is added and are never
// re-synced afterwards.
type LineItem struct {
	LineID    uuid.UUID `json:"line_id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"` // rounded at insertion
	Thumbnail string    `json:"thumbnail,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// NewItem is what a caller hands to the store; the store assigns the line id,
// rounds the price and stamps the time.
type NewItem struct {
	BookID    string
	Title     string
	Price     float64
	Thumbnail string
}

// LineGroup is a cart page row: all repetitions of one book.
type LineGroup struct {
	BookID    string      `json:"book_id"`
	Title     string      `json:"title"`
	Price     float64     `json:"price"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Quantity  int         `json:"quantity"`
	Subtotal  float64     `json:"subtotal"`
	LineIDs   []uuid.UUID `json:"line_ids"`
}

// Snapshot is the persisted form of a session cart.
type Snapshot struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Version   uint64     `json:"version"`
	UpdatedAt time.Time  `json:"updated_at"`
}
