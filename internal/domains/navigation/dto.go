package navigation

import (
	bookModel "bookstore-storefront/internal/domains/book/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SearchRequest - POST /search
type SearchRequest struct {
	Q string `json:"q"`
}

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Q, validation.Length(0, 200)),
	)
}

// FilterRequest - POST /filters and POST /filters/reset
type FilterRequest struct {
	Price bookModel.PriceBracket `json:"price"`
	Q     string                 `json:"q"`
}

func (r FilterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Price, validation.By(func(v interface{}) error {
			b, _ := v.(bookModel.PriceBracket)
			if b != "" && !b.IsValid() {
				return validation.NewError("validation_invalid_bracket", "price must be one of all, under-25, 25-50, 50-75, over-75")
			}
			return nil
		})),
		validation.Field(&r.Q, validation.Length(0, 200)),
	)
}
