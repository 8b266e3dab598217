package model

import "time"

const (
	// DefaultCartTTL matches the session cookie lifetime.
	DefaultCartTTL = 30 * 24 * time.Hour

	// MaxLineItems caps one session cart; each copy of a book is a line.
	MaxLineItems = 500
)

// Cache keys
const (
	// CacheKeyCartBySession format: "cart:session:{sessionID}"
	CacheKeyCartBySession = "cart:session:%s"
)

// Mutation names used for metrics and logs.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
	OpClear  = "clear"
	OpRekey  = "rekey"
)
