package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/ratelimit"
)

func TestAllow_UnderLimit(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("4th request should be limited")
	}
}

func TestAllow_IndependentKeys(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("a") {
		t.Error("first request for key a should pass")
	}
	if !l.Allow("b") {
		t.Error("first request for key b should pass")
	}
	if l.Allow("a") {
		t.Error("second request for key a should be limited")
	}
}

func TestAllow_WindowExpiry(t *testing.T) {
	l := ratelimit.New(1, 10*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first request should pass")
	}
	if l.Allow("k") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(15 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("request after window expiry should pass")
	}
}

func TestRemaining(t *testing.T) {
	l := ratelimit.New(5, time.Minute)

	if got := l.Remaining("k"); got != 5 {
		t.Errorf("fresh key remaining: got %d, want 5", got)
	}
	l.Allow("k")
	l.Allow("k")
	if got := l.Remaining("k"); got != 3 {
		t.Errorf("remaining after 2: got %d, want 3", got)
	}
}

func TestReset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("should be limited before reset")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("should be allowed after reset")
	}
}

func TestClose_IdempotentAndStillLimits(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Close()
	l.Close() // second call must not panic

	if !l.Allow("k") {
		t.Error("first request after Close should pass")
	}
	if l.Allow("k") {
		t.Error("second request after Close should be limited")
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*http.Request)
		remote string
		want   string
	}{
		{
			name:   "x-forwarded-for first entry",
			setup:  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2") },
			remote: "127.0.0.1:80",
			want:   "10.0.0.1",
		},
		{
			name:   "x-real-ip",
			setup:  func(r *http.Request) { r.Header.Set("X-Real-IP", "10.0.0.3") },
			remote: "127.0.0.1:80",
			want:   "10.0.0.3",
		},
		{
			name:   "remote addr with port",
			setup:  func(r *http.Request) {},
			remote: "192.168.1.1:5555",
			want:   "192.168.1.1",
		},
		{
			name:   "remote addr without port",
			setup:  func(r *http.Request) {},
			remote: "192.168.1.2",
			want:   "192.168.1.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			tt.setup(req)
			if got := ratelimit.ClientIP(req); got != tt.want {
				t.Errorf("ClientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
