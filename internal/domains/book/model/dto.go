package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func (r QuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Action,
			validation.Required.Error("action is required"),
			validation.In(QuantityIncrement, QuantityDecrement, QuantitySet).Error("action must be increment, decrement or set"),
		),
		validation.Field(&r.Value,
			validation.When(r.Action == QuantitySet, validation.Required.Error("value is required for set")),
		),
	)
}

// AddToCartResponse tells the client where to navigate after adding copies.
type AddToCartResponse struct {
	BookID     string `json:"book_id"`
	Added      int    `json:"added"`
	TotalItems int    `json:"total_items"`
	Redirect   string `json:"redirect"`
}

// QuantityResponse reports the selector after a +/-/set action. Applied is
// false when the action was out of range and ignored.
type QuantityResponse struct {
	BookID   string                `json:"book_id"`
	Applied  bool                  `json:"applied"`
	Quantity QuantitySelectorState `json:"quantity"`
}
