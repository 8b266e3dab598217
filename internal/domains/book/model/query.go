package model

import "strings"

// ListQuery is the query context of a listing view.
type ListQuery struct {
	Search   string       `json:"q,omitempty"`
	Bracket  PriceBracket `json:"price"`
	Limit    int          `json:"limit,omitempty"`
	Featured bool         `json:"featured,omitempty"`
}

// Normalize trims the search term and folds unknown brackets to "all".
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.Bracket = ParseBracket(string(q.Bracket))
	if q.Limit < 0 {
		q.Limit = 0
	}
	return q
}

// IsSearch reports whether the query routes to the search endpoint.
func (q ListQuery) IsSearch() bool {
	return strings.TrimSpace(q.Search) != ""
}

// ListingState is the terminal (or pending) state of a listing load.
type ListingState string

const (
	ListingLoading ListingState = "loading"
	ListingReady   ListingState = "ready"
	ListingEmpty   ListingState = "empty"
	ListingError   ListingState = "error"
)

const (
	ListingLoadFailedMessage = "Oops! Something went wrong while loading books."
	ListingEmptyMessage      = "No books found. Try adjusting your search or filters."
	DetailLoadFailedMessage  = "Failed to load book details. Please try again later."
)

// ListingResult is the outcome of one pipeline run.
type ListingResult struct {
	Query   ListQuery    `json:"query"`
	State   ListingState `json:"state"`
	Books   []Book       `json:"books"`
	Message string       `json:"message,omitempty"`
}

// NewListingResult classifies books as ready or empty.
func NewListingResult(q ListQuery, books []Book) *ListingResult {
	if books == nil {
		books = []Book{}
	}
	r := &ListingResult{Query: q, Books: books, State: ListingReady}
	if len(books) == 0 {
		r.State = ListingEmpty
		r.Message = ListingEmptyMessage
	}
	return r
}

// Count is the "Showing N books" figure.
func (r *ListingResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Books)
}

// ListingResponse is the JSON payload of the listing endpoint.
type ListingResponse struct {
	Query   ListQuery       `json:"query"`
	State   ListingState    `json:"state"`
	Count   int             `json:"count"`
	Books   []BookCard      `json:"books"`
	Message string          `json:"message,omitempty"`
	Filters []BracketOption `json:"filters"`
}

func NewListingResponse(r *ListingResult) ListingResponse {
	cards := make([]BookCard, 0, len(r.Books))
	for _, b := range r.Books {
		cards = append(cards, NewBookCard(b))
	}
	return ListingResponse{
		Query:   r.Query,
		State:   r.State,
		Count:   len(cards),
		Books:   cards,
		Message: r.Message,
		Filters: BracketOptions,
	}
}
