package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pawhaven/pawhaven/pkg/response"
)

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	count   int
	resetAt time.Time
}

// limiter holds the buckets for one RateLimit band. Each band keeps its
// own map so the credential routes and the general surface count
// independently.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	buckets map[string]*bucket
}

func newLimiter(max int, window time.Duration) *limiter {
	l := &limiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
	}
	go l.evictLoop()
	return l
}

func (l *limiter) allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++
	return b.count <= l.max
}

// evictLoop drops expired buckets so memory stays bounded on
// long-running servers.
func (l *limiter) evictLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for key, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP resolves the caller's address: the first hop of
// X-Forwarded-For when a proxy set it, otherwise RemoteAddr without the
// port, so one client is one bucket regardless of ephemeral ports.
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

// RateLimit limits each client IP to max requests per window. Use one
// instance per route band; the session routes carry a tighter limit
// than general browsing.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Retry-After", l.window.String())
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
