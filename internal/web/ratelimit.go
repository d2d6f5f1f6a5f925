package web

import (
	"net"
	"sync"
	"time"
)

const rateLimitWindow = 1 * time.Minute

// rateLimiter tracks comment posts per client IP over a sliding window.
// A zero max disables it.
type rateLimiter struct {
	mu       sync.Mutex
	max      int
	now      func() time.Time
	attempts map[string][]time.Time
}

func newRateLimiter(max int) *rateLimiter {
	return &rateLimiter{
		max:      max,
		now:      time.Now,
		attempts: make(map[string][]time.Time),
	}
}

// allow records an attempt from remoteAddr and reports whether it is
// within the limit.
func (rl *rateLimiter) allow(remoteAddr string) bool {
	if rl.max <= 0 {
		return true
	}

	ip := clientIP(remoteAddr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rateLimitWindow)

	// Prune old entries
	valid := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.max {
		rl.attempts[ip] = valid
		return false
	}

	rl.attempts[ip] = append(valid, now)

	// Drop idle clients so the map does not grow without bound.
	for k, ts := range rl.attempts {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(rl.attempts, k)
		}
	}

	return true
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
