package web

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/marsadembi/portfolio/internal/contact"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2)
	rl.now = func() time.Time { return now }

	if !rl.allow("10.0.0.1:5000") || !rl.allow("10.0.0.1:5001") {
		t.Fatal("first two attempts should pass")
	}
	if rl.allow("10.0.0.1:5002") {
		t.Error("third attempt within the window should be limited")
	}
	if !rl.allow("10.0.0.2:5000") {
		t.Error("other clients are counted separately")
	}

	now = now.Add(rateLimitWindow + time.Second)
	if !rl.allow("10.0.0.1:5003") {
		t.Error("attempts should pass again after the window")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		if !rl.allow("10.0.0.1:1") {
			t.Fatal("disabled limiter should always allow")
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[::1]:80", "::1"},
		{"no-port", "no-port"},
	}
	for _, tt := range tests {
		if got := clientIP(tt.in); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAPIAddCommentRateLimited(t *testing.T) {
	srv := testServer(t)
	srv.limiter = newRateLimiter(1)

	body := map[string]interface{}{"name": "A", "email": "a@x.io", "message": "m", "rating": 3}
	if w := apiRequest(t, srv, "POST", "/api/comments", body); w.Code != http.StatusCreated {
		t.Fatalf("first post status = %d, want 201", w.Code)
	}
	if w := apiRequest(t, srv, "POST", "/api/comments", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("second post status = %d, want 429", w.Code)
	}
}

func TestContactPostRateLimited(t *testing.T) {
	srv, d := testServerWithDB(t)
	srv.limiter = newRateLimiter(1)

	postForm(srv, "/contact", validContactForm(), true)
	w := postForm(srv, "/contact", validContactForm(), true)

	if !strings.Contains(w.Body.String(), contact.MsgFailure) {
		t.Error("expected failure alert when rate limited")
	}
	if n := countComments(t, d); n != 1 {
		t.Errorf("comments stored = %d, want 1", n)
	}
}
