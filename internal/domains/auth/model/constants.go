package model

import "time"

const (
	// DefaultSessionTTL matches the session cookie lifetime.
	DefaultSessionTTL = 30 * 24 * time.Hour
)

// Cache keys
const (
	// CacheKeyAuthBySession format: "auth:session:{sessionID}"
	CacheKeyAuthBySession = "auth:session:%s"
)
