package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(rate, burst int) *RateLimiter {
	rl := NewRateLimiter(RateLimitConfig{
		Rate:   rate,
		Window: time.Minute,
		Burst:  burst,
	})
	return rl
}

func TestAllow_WithinLimit(t *testing.T) {
	rl := newTestLimiter(5, 0)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		allowed, _, _ := rl.Allow("1.2.3.4")
		assert.True(t, allowed, "request %d should be allowed", i)
	}
}

func TestAllow_DeniesWhenExhausted(t *testing.T) {
	rl := newTestLimiter(2, 0)
	defer rl.Stop()

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")

	allowed, remaining, retryAfter := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.GreaterOrEqual(t, retryAfter, 1)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(1, 0)
	defer rl.Stop()

	allowed, _, _ := rl.Allow("1.1.1.1")
	assert.True(t, allowed)
	allowed, _, _ = rl.Allow("2.2.2.2")
	assert.True(t, allowed)

	allowed, _, _ = rl.Allow("1.1.1.1")
	assert.False(t, allowed)
}

func TestAllow_BurstHeadroom(t *testing.T) {
	rl := newTestLimiter(1, 2)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, _, _ := rl.Allow("k")
		assert.True(t, allowed, "burst request %d should be allowed", i)
	}
	allowed, _, _ := rl.Allow("k")
	assert.False(t, allowed)
}

func TestRateLimitMiddleware_Denies429(t *testing.T) {
	rl := newTestLimiter(1, 0)
	defer rl.Stop()

	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/check_status", nil)
	req.RemoteAddr = "10.0.0.1:4567"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_UsesForwardedFor(t *testing.T) {
	rl := newTestLimiter(1, 0)
	defer rl.Stop()

	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	mkReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/check_status", nil)
		req.RemoteAddr = "10.0.0.9:1111" // same LB address for everyone
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.9")
		return req
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, mkReq("203.0.113.5"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Different client behind the same LB still has its own allowance.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, mkReq("203.0.113.6"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, mkReq("203.0.113.5"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
