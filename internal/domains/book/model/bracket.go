package model

// PriceBracket is one of the named price-range filters of the listing view.
type PriceBracket string

const (
	BracketAll     PriceBracket = "all"
	BracketUnder25 PriceBracket = "under-25"
	Bracket25To50  PriceBracket = "25-50"
	Bracket50To75  PriceBracket = "50-75"
	BracketOver75  PriceBracket = "over-75"
)

// BracketOption is a radio entry of the filter sidebar.
type BracketOption struct {
	Value PriceBracket `json:"value"`
	Label string       `json:"label"`
}

// BracketOptions lists the sidebar entries in display order.
var BracketOptions = []BracketOption{
	{Value: BracketAll, Label: "All Prices"},
	{Value: BracketUnder25, Label: "Under $25"},
	{Value: Bracket25To50, Label: "$25 - $50"},
	{Value: Bracket50To75, Label: "$50 - $75"},
	{Value: BracketOver75, Label: "$75 - $100"},
}

// ParseBracket maps a query-string value to a bracket. Unknown values and
// the empty string mean no filtering.
func ParseBracket(s string) PriceBracket {
	switch b := PriceBracket(s); b {
	case BracketUnder25, Bracket25To50, Bracket50To75, BracketOver75:
		return b
	default:
		return BracketAll
	}
}

func (b PriceBracket) IsValid() bool {
	switch b {
	case BracketAll, BracketUnder25, Bracket25To50, Bracket50To75, BracketOver75:
		return true
	}
	return false
}

// Contains reports whether an already-rounded price falls in the bracket.
// 25-50 is closed on both ends while 50-75 and over-75 exclude their lower
// bound, so 50.00 belongs to 25-50 only.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case BracketUnder25:
		return price < 25
	case Bracket25To50:
		return price >= 25 && price <= 50
	case Bracket50To75:
		return price > 50 && price <= 75
	case BracketOver75:
		return price > 75
	default:
		return true
	}
}
