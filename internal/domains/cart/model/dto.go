package model

import (
	"bookstore-storefront/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddItemRequest - POST /cart/items (the book card's "Add to Cart").
// Only the id is taken from the client; title, price and thumbnail are
// copied from the catalog.
type AddItemRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required"), validation.Length(1, 100)),
	)
}

// UpdateQuantityRequest - PUT /cart/items/:book_id
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Min(0), validation.Max(MaxLineItems)),
	)
}

// CartResponse is the cart page payload and the navbar badge source.
type CartResponse struct {
	Items               []LineItem  `json:"items"`
	Groups              []LineGroup `json:"groups"`
	TotalItems          int         `json:"total_items"`
	TotalPrice          float64     `json:"total_price"`
	FormattedTotalPrice string      `json:"formatted_total_price"`
	Version             uint64      `json:"version"`
	Empty               bool        `json:"empty"`
}

func NewCartResponse(items []LineItem, groups []LineGroup, total float64, version uint64) CartResponse {
	if items == nil {
		items = []LineItem{}
	}
	if groups == nil {
		groups = []LineGroup{}
	}
	return CartResponse{
		Items:               items,
		Groups:              groups,
		TotalItems:          len(items),
		TotalPrice:          total,
		FormattedTotalPrice: utils.FormatPrice(total),
		Version:             version,
		Empty:               len(items) == 0,
	}
}

// RemoveResponse reports whether a removal matched anything; a miss is not an error.
type RemoveResponse struct {
	Removed bool         `json:"removed"`
	Cart    CartResponse `json:"cart"`
}
