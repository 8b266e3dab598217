package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	l := NewRateLimiter(1, 2)
	r := gin.New()
	r.POST("/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other clients have their own bucket")
}

func TestRateLimiter_Sweep(t *testing.T) {
	l := NewRateLimiter(60, 1)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(time.Hour)
	l.allow("b")

	assert.Equal(t, 1, l.Sweep(time.Minute))
	assert.Len(t, l.visitors, 1)
}

func loginRouter(t *testing.T, l *RateLimiter, trusted []string) *gin.Engine {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.POST("/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	r := loginRouter(t, NewRateLimiter(1, 1), nil)

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.5:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed, "an untrusted peer cannot mint new buckets via X-Forwarded-For")
}

func TestRateLimiter_TrustedProxyForwardsClientIP(t *testing.T) {
	r := loginRouter(t, NewRateLimiter(1, 1), []string{"10.1.0.0/16"})

	codes := make([]int, 0, 2)
	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.1.0.7:4000"
		req.Header.Set("X-Forwarded-For", client)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200}, codes, "clients behind the proxy get separate buckets")
}
