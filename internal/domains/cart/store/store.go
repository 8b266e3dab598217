// Package store holds the session-scoped shopping cart.
//
// Quantity is expressed by repetition: adding the same book three times
// yields three independent line items, and removing "one" removes a single
// repetition. Totals are derived on read.
package store

import (
	"sync"
	"time"

	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/shared/utils"

	"github.com/google/uuid"
)

// Store is the ordered collection of line items of one browsing session.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	items   []model.LineItem
	version uint64
	now     func() time.Time
	newID   func() uuid.UUID
}

// New returns an empty cart.
func New() *Store {
	return &Store{now: time.Now, newID: uuid.New}
}

// FromSnapshot restores a cart persisted earlier.
func FromSnapshot(snap model.Snapshot) *Store {
	s := New()
	s.items = append([]model.LineItem(nil), snap.Items...)
	s.version = snap.Version
	return s
}

// AddItem appends one line item and returns it. Duplicate book ids are allowed.
func (s *Store) AddItem(item model.NewItem) (model.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(item)
}

// AddCopies appends n independent line items for the same book. Either all
// copies are added or none.
func (s *Store) AddCopies(item model.NewItem, n int) ([]model.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}
	if len(s.items)+n > model.MaxLineItems {
		return nil, model.ErrCartFull
	}
	added := make([]model.LineItem, 0, n)
	for i := 0; i < n; i++ {
		line, err := s.addLocked(item)
		if err != nil {
			return added, err
		}
		added = append(added, line)
	}
	return added, nil
}

func (s *Store) addLocked(item model.NewItem) (model.LineItem, error) {
	if len(s.items) >= model.MaxLineItems {
		return model.LineItem{}, model.ErrCartFull
	}
	line := model.LineItem{
		LineID:    s.newID(),
		BookID:    item.BookID,
		Title:     item.Title,
		Price:     utils.RoundPrice(item.Price),
		Thumbnail: item.Thumbnail,
		AddedAt:   s.now(),
	}
	s.items = append(s.items, line)
	s.version++
	return line, nil
}

// RemoveAt removes the line at index i. Out of range is a no-op.
func (s *Store) RemoveAt(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.removeLocked(i)
	return true
}

// RemoveLine removes the line with the given id. Unknown ids are a no-op.
func (s *Store) RemoveLine(lineID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].LineID == lineID {
			s.removeLocked(i)
			return true
		}
	}
	return false
}

// RemoveBook removes the first repetition of bookID. Unknown ids are a no-op.
func (s *Store) RemoveBook(bookID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].BookID == bookID {
			s.removeLocked(i)
			return true
		}
	}
	return false
}

func (s *Store) removeLocked(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.version++
}

// UpdateQuantity makes bookID appear exactly n times. Missing copies are
// cloned from the first repetition (keeping its denormalized fields); surplus
// copies are removed from the end. n <= 0 removes every repetition.
// Returns false when bookID is not in the cart.
func (s *Store) UpdateQuantity(bookID string, n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []int
	for i := range s.items {
		if s.items[i].BookID == bookID {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return false, nil
	}
	if n < 0 {
		n = 0
	}

	current := len(positions)
	switch {
	case n > current:
		if len(s.items)+(n-current) > model.MaxLineItems {
			return true, model.ErrCartFull
		}
		first := s.items[positions[0]]
		for i := current; i < n; i++ {
			line := first
			line.LineID = s.newID()
			line.AddedAt = s.now()
			s.items = append(s.items, line)
		}
		s.version++
	case n < current:
		drop := make(map[int]bool, current-n)
		for _, p := range positions[n:] {
			drop[p] = true
		}
		kept := s.items[:0]
		for i, it := range s.items {
			if !drop[i] {
				kept = append(kept, it)
			}
		}
		s.items = kept
		s.version++
	}
	return true, nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.version++
}

// TotalItems is the number of line items.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalPrice is the sum of line prices, rounded at read time.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked()
}

func (s *Store) totalLocked() float64 {
	prices := make([]float64, len(s.items))
	for i, it := range s.items {
		prices[i] = it.Price
	}
	return utils.SumPrices(prices...)
}

// IsEmpty reports whether the cart holds no lines.
func (s *Store) IsEmpty() bool {
	return s.TotalItems() == 0
}

// Version increases on every mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.LineItem(nil), s.items...)
}

// Groups folds repetitions into one row per book, ordered by first insertion.
func (s *Store) Groups() []model.LineGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return groupLines(s.items)
}

func groupLines(items []model.LineItem) []model.LineGroup {
	index := map[string]int{}
	var groups []model.LineGroup
	for _, it := range items {
		gi, ok := index[it.BookID]
		if !ok {
			gi = len(groups)
			index[it.BookID] = gi
			groups = append(groups, model.LineGroup{
				BookID:    it.BookID,
				Title:     it.Title,
				Price:     it.Price,
				Thumbnail: it.Thumbnail,
			})
		}
		g := &groups[gi]
		g.Quantity++
		g.LineIDs = append(g.LineIDs, it.LineID)
		g.Subtotal = utils.SumPrices(g.Subtotal, it.Price)
	}
	return groups
}

// Snapshot captures the cart for persistence.
func (s *Store) Snapshot(sessionID string) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Snapshot{
		SessionID: sessionID,
		Items:     append([]model.LineItem(nil), s.items...),
		Version:   s.version,
		UpdatedAt: s.now(),
	}
}

// Response builds the cart page payload from a consistent view of the store.
func (s *Store) Response() model.CartResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]model.LineItem(nil), s.items...)
	return model.NewCartResponse(items, groupLines(s.items), s.totalLocked(), s.version)
}
