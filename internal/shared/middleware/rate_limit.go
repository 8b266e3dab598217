package middleware

import (
	"net/http"
	"sync"
	"time"

	"bookstore-storefront/internal/shared/response"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter.AllowN(v.lastSeen, 1)
}

// Sweep forgets clients not seen for maxIdle.
func (l *RateLimiter) Sweep(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			n++
		}
	}
	return n
}

// Middleware answers 429 once a client IP has used up its bucket. The IP
// comes from gin's ClientIP, so forwarded headers only count when the
// engine trusts the peer (SetTrustedProxies).
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			logger.Warn("[RateLimit] client throttled", map[string]interface{}{
				"client_ip": ip,
				"path":      c.FullPath(),
			})
			response.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
