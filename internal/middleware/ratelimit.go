package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/scriba/schema-api/internal/model"
)

// RateLimiter is a token bucket limiter keyed by client IP. Each browser
// check ties up a pooled Chrome instance, so requests are throttled before
// they can queue on the pool.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate     int
	window   time.Duration
	burst    int
	stopOnce sync.Once
	stopCh   chan struct{}
}

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate   int           // Requests per window
	Window time.Duration // Time window
	Burst  int           // Extra headroom above Rate
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate < 1 {
		cfg.Rate = 60
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst < 0 {
		cfg.Burst = 0
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		stopCh:  make(chan struct{}),
	}
	go rl.reapLoop()
	return rl
}

// Stop terminates the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) reapLoop() {
	ticker := time.NewTicker(5 * rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.reap()
		case <-rl.stopCh:
			return
		}
	}
}

// reap drops buckets that have fully refilled, i.e. idle clients.
func (rl *RateLimiter) reap() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.window)
	for key, b := range rl.buckets {
		if b.last.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) capacity() float64 {
	return float64(rl.rate + rl.burst)
}

// Allow reports whether a request from key may proceed, along with the
// remaining allowance and the seconds until a token frees up when denied.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity(), last: now}
		rl.buckets[key] = b
	} else {
		refill := float64(rl.rate) * now.Sub(b.last).Seconds() / rl.window.Seconds()
		b.tokens = min(b.tokens+refill, rl.capacity())
		b.last = now
	}

	if b.tokens < 1 {
		secsPerToken := rl.window.Seconds() / float64(rl.rate)
		retry := int((1 - b.tokens) * secsPerToken)
		if retry < 1 {
			retry = 1
		}
		return false, 0, retry
	}

	b.tokens--
	return true, int(b.tokens), 0
}

// RateLimit returns a middleware enforcing the given limiter per client IP
func RateLimit(rl *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := rl.Allow(clientIP(r))

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, preferring X-Forwarded-For when the
// service sits behind a load balancer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
