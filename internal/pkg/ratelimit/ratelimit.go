package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	count     int
	expiresAt time.Time
}

// Limiter is a fixed-window in-memory rate limiter keyed by caller-chosen
// strings (the portal keys on guest email). State is process-local; with
// multiple instances each enforces its own window, which is acceptable for
// an abuse brake on a public form.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	window  time.Duration
	max     int
	now     func() time.Time
}

func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow reports whether another request under key fits in the current
// window, counting it when it does.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || b.expiresAt.Before(now) {
		l.buckets[key] = &bucket{count: 1, expiresAt: now.Add(l.window)}
		l.sweep(now)
		return true
	}
	if b.count >= l.max {
		return false
	}
	b.count++
	return true
}

// sweep drops expired buckets so the map does not grow unbounded. Called
// under the mutex.
func (l *Limiter) sweep(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for key, b := range l.buckets {
		if b.expiresAt.Before(now) {
			delete(l.buckets, key)
		}
	}
}
