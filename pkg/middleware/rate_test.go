package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pawhaven/pawhaven/pkg/middleware"
)

func hit(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitPerClient(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.RateLimit(3, time.Minute)(ok)

	for i := 0; i < 3; i++ {
		if code := hit(h, "10.0.0.1:1000", ""); code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, code)
		}
	}
	if code := hit(h, "10.0.0.1:1001", ""); code != http.StatusTooManyRequests {
		t.Errorf("over-limit request expected 429, got %d", code)
	}

	// a different client has its own bucket
	if code := hit(h, "10.0.0.2:1000", ""); code != http.StatusOK {
		t.Errorf("other client expected 200, got %d", code)
	}
}

// The bucket key ignores the ephemeral port and prefers the first
// X-Forwarded-For hop.
func TestRateLimitClientKey(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.RateLimit(1, time.Minute)(ok)

	if code := hit(h, "10.0.0.1:1000", ""); code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", code)
	}
	if code := hit(h, "10.0.0.1:2000", ""); code != http.StatusTooManyRequests {
		t.Errorf("same IP on a new port should share the bucket, got %d", code)
	}

	if code := hit(h, "192.168.0.9:1000", "203.0.113.7, 10.0.0.1"); code != http.StatusOK {
		t.Fatalf("forwarded client expected its own bucket, got %d", code)
	}
	if code := hit(h, "192.168.0.10:1000", "203.0.113.7"); code != http.StatusTooManyRequests {
		t.Errorf("same forwarded client via another proxy should share the bucket, got %d", code)
	}
}

// Each RateLimit instance is an independent band.
func TestRateLimitBandsIndependent(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	tight := middleware.RateLimit(1, time.Minute)(ok)
	loose := middleware.RateLimit(10, time.Minute)(ok)

	if code := hit(tight, "10.0.0.1:1000", ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := hit(tight, "10.0.0.1:1000", ""); code != http.StatusTooManyRequests {
		t.Fatalf("tight band should be exhausted, got %d", code)
	}
	if code := hit(loose, "10.0.0.1:1000", ""); code != http.StatusOK {
		t.Errorf("loose band must not share the tight band's bucket, got %d", code)
	}
}
