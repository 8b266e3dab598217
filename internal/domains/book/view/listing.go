package view

import (
	"sync"

	"bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/pkg/sequence"
)

// ListingSnapshot is what the listing page currently shows.
type ListingSnapshot struct {
	Ticket  sequence.Ticket      `json:"sequence"`
	Query   model.ListQuery      `json:"query"`
	State   model.ListingState   `json:"state"`
	Result  *model.ListingResult `json:"-"`
	Message string               `json:"message,omitempty"`
}

// ListingView holds the listing state of one session. Loads are tagged with
// tickets; only the newest load may replace the shown result.
type ListingView struct {
	guard sequence.Guard

	mu   sync.RWMutex
	snap ListingSnapshot
}

func newListingView() *ListingView {
	return &ListingView{snap: ListingSnapshot{State: model.ListingLoading}}
}

// Begin issues a ticket for a load of q and flips the view to loading.
func (v *ListingView) Begin(q model.ListQuery) sequence.Ticket {
	t := v.guard.Next()
	v.guard.Commit(t, func() {
		v.mu.Lock()
		v.snap = ListingSnapshot{Ticket: t, Query: q, State: model.ListingLoading}
		v.mu.Unlock()
	})
	return t
}

// Finish commits the outcome of the load identified by t. It returns false
// when a newer load was issued meanwhile; the outcome is then dropped.
func (v *ListingView) Finish(t sequence.Ticket, res *model.ListingResult, err error) bool {
	return v.guard.Commit(t, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if err != nil {
			v.snap.State = model.ListingError
			v.snap.Result = nil
			v.snap.Message = model.ListingLoadFailedMessage
			return
		}
		v.snap.Query = res.Query
		v.snap.State = res.State
		v.snap.Result = res
		v.snap.Message = res.Message
	})
}

func (v *ListingView) Snapshot() ListingSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}
