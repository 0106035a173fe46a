package ratelimit

import (
	"sync"
	"time"
)

// Limiter throttles card creation per client key: one accepted request per
// window. State is a plain timestamp map for the lifetime of the process;
// it is not shared across instances and resets on restart. Under
// horizontal scaling the effective limit is window x instance-count, which
// is accepted for this workload.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func New(window time.Duration) *Limiter {
	return &Limiter{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether a request for key may proceed. An accepted key is
// stamped immediately, whether or not the create that follows succeeds.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if prev, ok := l.last[key]; ok && now.Sub(prev) < l.window {
		return false
	}
	l.last[key] = now
	return true
}
