package view

import (
	"strings"
	"sync"
	"time"

	"bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/pkg/metrics"
	"bookstore-storefront/pkg/sequence"
)

const (
	viewListing = "listing"
	viewDetail  = "detail"
)

type sessionViews struct {
	mu        sync.Mutex
	listing   *ListingView
	detail    *DetailView
	selectors map[string]*model.QuantitySelector
	lastSeen  time.Time
}

// Registry keeps the view state of every browsing session.
type Registry struct {
	metrics *metrics.StorefrontMetrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionViews
}

func NewRegistry(m *metrics.StorefrontMetrics) *Registry {
	return &Registry{
		metrics:  m,
		now:      time.Now,
		sessions: make(map[string]*sessionViews),
	}
}

func (r *Registry) session(sessionID string) *sessionViews {
	r.mu.Lock()
	defer r.mu.Unlock()

	sv, ok := r.sessions[sessionID]
	if !ok {
		sv = &sessionViews{
			listing:   newListingView(),
			detail:    &DetailView{},
			selectors: make(map[string]*model.QuantitySelector),
		}
		r.sessions[sessionID] = sv
	}
	sv.lastSeen = r.now()
	return sv
}

func (r *Registry) Listing(sessionID string) *ListingView {
	return r.session(sessionID).listing
}

func (r *Registry) Detail(sessionID string) *DetailView {
	return r.session(sessionID).detail
}

// FinishListing commits a listing load and counts it when it was stale.
func (r *Registry) FinishListing(v *ListingView, t sequence.Ticket, res *model.ListingResult, err error) bool {
	return r.observe(viewListing, v.Finish(t, res, err))
}

// FinishDetail commits a detail load and counts it when it was stale.
func (r *Registry) FinishDetail(v *DetailView, t sequence.Ticket, book *model.Book, err error) bool {
	return r.observe(viewDetail, v.Finish(t, book, err))
}

func (r *Registry) observe(view string, committed bool) bool {
	if !committed {
		r.metrics.IncStaleResponse(view)
	}
	return committed
}

// SyncSelector returns the session's selector for book, creating it at 1 or
// adopting the book's current stock.
func (r *Registry) SyncSelector(sessionID string, book model.Book) model.QuantitySelectorState {
	sv := r.session(sessionID)
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return selectorLocked(sv, book).State()
}

// AdjustQuantity applies a +/-/set action to the selector of book. applied
// is false when the action would leave [1, stock]; the state is unchanged.
func (r *Registry) AdjustQuantity(sessionID string, book model.Book, req model.QuantityRequest) (state model.QuantitySelectorState, applied bool, err error) {
	sv := r.session(sessionID)
	sv.mu.Lock()
	defer sv.mu.Unlock()

	q := selectorLocked(sv, book)
	switch req.Action {
	case model.QuantityIncrement:
		applied = q.Increment()
	case model.QuantityDecrement:
		applied = q.Decrement()
	case model.QuantitySet:
		applied = q.Set(req.Value)
	default:
		return q.State(), false, model.ErrInvalidQuantity
	}
	return q.State(), applied, nil
}

// TakeQuantity returns the selected quantity for book and resets the
// selector, as leaving the detail page does.
func (r *Registry) TakeQuantity(sessionID string, book model.Book) int {
	sv := r.session(sessionID)
	sv.mu.Lock()
	defer sv.mu.Unlock()

	n := selectorLocked(sv, book).Quantity()
	delete(sv.selectors, book.ID)
	return n
}

func selectorLocked(sv *sessionViews, book model.Book) *model.QuantitySelector {
	q, ok := sv.selectors[book.ID]
	if !ok {
		q = model.NewQuantitySelector(book.Stock)
		sv.selectors[book.ID] = q
		return q
	}
	q.Restock(book.Stock)
	return q
}

// Drop forgets all view state of a session (session end).
func (r *Registry) Drop(sessionID string) {
	if strings.TrimSpace(sessionID) == "" {
		return
	}
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Sweep drops sessions idle for longer than maxIdle.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, sv := range r.sessions {
		if sv.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
