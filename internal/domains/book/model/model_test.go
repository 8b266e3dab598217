package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceBracket_Boundaries(t *testing.T) {
	cases := []struct {
		price float64
		in    []PriceBracket
		out   []PriceBracket
	}{
		{25.00, []PriceBracket{Bracket25To50}, []PriceBracket{BracketUnder25, Bracket50To75, BracketOver75}},
		{50.00, []PriceBracket{Bracket25To50}, []PriceBracket{BracketUnder25, Bracket50To75, BracketOver75}},
		{75.00, []PriceBracket{Bracket50To75}, []PriceBracket{Bracket25To50, BracketOver75}},
		{24.99, []PriceBracket{BracketUnder25}, []PriceBracket{Bracket25To50}},
		{50.01, []PriceBracket{Bracket50To75}, []PriceBracket{Bracket25To50}},
		{75.01, []PriceBracket{BracketOver75}, []PriceBracket{Bracket50To75}},
	}
	for _, tc := range cases {
		for _, b := range tc.in {
			assert.True(t, b.Contains(tc.price), "%v should be in %s", tc.price, b)
		}
		for _, b := range tc.out {
			assert.False(t, b.Contains(tc.price), "%v should not be in %s", tc.price, b)
		}
		assert.True(t, BracketAll.Contains(tc.price))
	}
}

func TestParseBracket(t *testing.T) {
	assert.Equal(t, BracketUnder25, ParseBracket("under-25"))
	assert.Equal(t, BracketOver75, ParseBracket("over-75"))
	assert.Equal(t, BracketAll, ParseBracket(""))
	assert.Equal(t, BracketAll, ParseBracket("cheap"))
	assert.False(t, PriceBracket("cheap").IsValid())
}

func TestQuantitySelector_OutOfRangeIsIgnored(t *testing.T) {
	q := NewQuantitySelector(3)
	assert.Equal(t, 1, q.Quantity())

	assert.False(t, q.Decrement(), "floor is 1")
	assert.Equal(t, 1, q.Quantity())

	assert.True(t, q.Increment())
	assert.True(t, q.Increment())
	assert.False(t, q.Increment(), "ceiling is stock")
	assert.Equal(t, 3, q.Quantity())

	// not clamped to stock: the whole adjustment is dropped
	assert.False(t, q.Set(10))
	assert.Equal(t, 3, q.Quantity())
	assert.False(t, q.Set(0))
	assert.True(t, q.Set(2))
	assert.Equal(t, 2, q.Quantity())
}

func TestQuantitySelector_ZeroStock(t *testing.T) {
	q := NewQuantitySelector(0)
	assert.False(t, q.CanAddToCart())
	assert.False(t, q.Increment())

	st := q.State()
	assert.False(t, st.CanAddToCart)
	assert.False(t, st.CanIncrement)
	assert.False(t, st.CanDecrement)
}

func TestQuantitySelector_Restock(t *testing.T) {
	q := NewQuantitySelector(5)
	q.Set(4)
	q.Restock(2)
	assert.Equal(t, 1, q.Quantity())
	assert.Equal(t, 2, q.Stock())
}

func TestBook_DisplayHelpers(t *testing.T) {
	b := Book{ID: "42", Title: "Dune", Price: 24.999}
	assert.Equal(t, UnknownAuthor, b.PrimaryAuthor())
	assert.Equal(t, UnknownAuthor, b.AuthorLine())
	assert.Equal(t, NoDescriptionText, b.DisplayDescription())
	assert.Equal(t, "/books/42", b.DetailPath())
	assert.Equal(t, 25.0, b.WithRoundedPrice().Price)
	assert.Equal(t, 24.999, b.Price, "WithRoundedPrice must not mutate the receiver")

	b.Authors = []string{"Frank Herbert", "Brian Herbert"}
	assert.Equal(t, "Frank Herbert", b.PrimaryAuthor())
	assert.Equal(t, "Frank Herbert, Brian Herbert", b.AuthorLine())
}

func TestNewListingResult_EmptyIsNotError(t *testing.T) {
	r := NewListingResult(ListQuery{Bracket: BracketOver75}, nil)
	assert.Equal(t, ListingEmpty, r.State)
	assert.Equal(t, ListingEmptyMessage, r.Message)
	assert.NotNil(t, r.Books)
	assert.Equal(t, 0, r.Count())

	r = NewListingResult(ListQuery{}, []Book{{ID: "1"}})
	assert.Equal(t, ListingReady, r.State)
	assert.Empty(t, r.Message)
}

func TestQuantityRequest_Validate(t *testing.T) {
	assert.NoError(t, QuantityRequest{Action: QuantityIncrement}.Validate())
	assert.NoError(t, QuantityRequest{Action: QuantitySet, Value: 3}.Validate())
	assert.Error(t, QuantityRequest{Action: QuantitySet}.Validate())
	assert.Error(t, QuantityRequest{Action: "double"}.Validate())
}
