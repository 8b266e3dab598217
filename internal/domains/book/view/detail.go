package view

import (
	"errors"
	"sync"

	"bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/pkg/sequence"
)

// DetailSnapshot is what the detail page currently shows.
type DetailSnapshot struct {
	Ticket   sequence.Ticket `json:"sequence"`
	BookID   string          `json:"book_id"`
	Loading  bool            `json:"loading"`
	Book     *model.Book     `json:"book,omitempty"`
	NotFound bool            `json:"not_found"`
	Message  string          `json:"message,omitempty"`
}

// DetailView is the detail-page counterpart of ListingView.
type DetailView struct {
	guard sequence.Guard

	mu   sync.RWMutex
	snap DetailSnapshot
}

func (v *DetailView) Begin(bookID string) sequence.Ticket {
	t := v.guard.Next()
	v.guard.Commit(t, func() {
		v.mu.Lock()
		v.snap = DetailSnapshot{Ticket: t, BookID: bookID, Loading: true}
		v.mu.Unlock()
	})
	return t
}

func (v *DetailView) Finish(t sequence.Ticket, book *model.Book, err error) bool {
	return v.guard.Commit(t, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		v.snap.Loading = false
		switch {
		case err == nil:
			v.snap.Book = book
		case errors.Is(err, model.ErrBookNotFound):
			v.snap.NotFound = true
			v.snap.Message = "Book not found"
		default:
			v.snap.Message = model.DetailLoadFailedMessage
		}
	})
}

func (v *DetailView) Snapshot() DetailSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}
