package model

// QuantitySelector is the bounded counter of the detail page.
// The value stays within [1, stock]; adjustments that would leave that range
// are ignored rather than clamped.
type QuantitySelector struct {
	stock    int
	quantity int
}

func NewQuantitySelector(stock int) *QuantitySelector {
	return &QuantitySelector{stock: stock, quantity: 1}
}

// Set applies n only when 1 <= n <= stock and reports whether it did.
func (q *QuantitySelector) Set(n int) bool {
	if n < 1 || n > q.stock {
		return false
	}
	q.quantity = n
	return true
}

func (q *QuantitySelector) Increment() bool { return q.Set(q.quantity + 1) }
func (q *QuantitySelector) Decrement() bool { return q.Set(q.quantity - 1) }

func (q *QuantitySelector) Quantity() int { return q.quantity }
func (q *QuantitySelector) Stock() int    { return q.stock }

func (q *QuantitySelector) CanIncrement() bool { return q.quantity < q.stock }
func (q *QuantitySelector) CanDecrement() bool { return q.quantity > 1 }

// CanAddToCart is false when the book is out of stock.
func (q *QuantitySelector) CanAddToCart() bool { return q.stock > 0 }

// Restock adopts a fresh stock figure after the book was re-fetched.
// A quantity above the new stock falls back to 1.
func (q *QuantitySelector) Restock(stock int) {
	q.stock = stock
	if q.quantity > stock {
		q.quantity = 1
	}
}

func (q *QuantitySelector) State() QuantitySelectorState {
	return QuantitySelectorState{
		Quantity:     q.quantity,
		Max:          q.stock,
		CanIncrement: q.CanIncrement(),
		CanDecrement: q.CanDecrement(),
		CanAddToCart: q.CanAddToCart(),
	}
}

// QuantitySelectorState drives the enabled/disabled state of the +/- and
// "Add to Cart" buttons.
type QuantitySelectorState struct {
	Quantity     int  `json:"quantity"`
	Max          int  `json:"max"`
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
	CanAddToCart bool `json:"can_add_to_cart"`
}

// QuantityAction is the body of POST /books/:id/quantity.
type QuantityAction string

const (
	QuantityIncrement QuantityAction = "increment"
	QuantityDecrement QuantityAction = "decrement"
	QuantitySet       QuantityAction = "set"
)

type QuantityRequest struct {
	Action QuantityAction `json:"action" binding:"required"`
	Value  int            `json:"value"`
}
