// ABOUTME: Tests for fixed-window rate limiting
// ABOUTME: Validates limits, window resets, key isolation, and the HTTP wrapper

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if allowed, _ := rl.Allow("ip:1.2.3.4"); !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
	if allowed, retryAfter := rl.Allow("ip:1.2.3.4"); allowed {
		t.Error("Fourth request should be denied")
	} else if retryAfter <= 0 {
		t.Errorf("Expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if allowed, _ := rl.Allow("ip:1.2.3.4"); !allowed {
		t.Fatal("First request should be allowed")
	}
	if allowed, _ := rl.Allow("ip:1.2.3.4"); allowed {
		t.Fatal("Second request within window should be denied")
	}

	time.Sleep(15 * time.Millisecond)

	if allowed, _ := rl.Allow("ip:1.2.3.4"); !allowed {
		t.Error("Request after window reset should be allowed")
	}
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("ip:1.1.1.1")
	if allowed, _ := rl.Allow("ip:2.2.2.2"); !allowed {
		t.Error("Different key should have its own counter")
	}
}

func TestClientIP_XForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")

	if got := ClientIP(r); got != "ip:9.9.9.9" {
		t.Errorf("Expected ip:9.9.9.9, got %s", got)
	}
}

func TestClientIP_RejectsGarbageHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "not-an-ip")
	r.RemoteAddr = "5.5.5.5:1234"

	if got := ClientIP(r); got != "ip:5.5.5.5" {
		t.Errorf("Expected fallback to RemoteAddr, got %s", got)
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if first.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on 429")
	}
}

func TestRateLimit_NilLimiterDisabled(t *testing.T) {
	handler := RateLimit(nil)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200 with nil limiter, got %d", rec.Code)
		}
	}
}
