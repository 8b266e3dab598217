// Package sequence tags in-flight loads with monotonically increasing tickets
// so that a slow response cannot overwrite the result of a newer request.
package sequence

import "sync"

// Ticket identifies one issued load.
type Ticket uint64

// Guard hands out tickets and decides whether a finished load may commit.
// The zero value is ready to use.
type Guard struct {
	mu     sync.Mutex
	latest Ticket
}

// Next issues a new ticket. Every ticket issued earlier becomes stale.
func (g *Guard) Next() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Commit runs apply only if t is still the newest ticket and reports whether
// it did. apply runs under the guard lock, so no newer ticket can be issued
// between the check and the write.
func (g *Guard) Commit(t Ticket, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t != g.latest {
		return false
	}
	apply()
	return true
}
