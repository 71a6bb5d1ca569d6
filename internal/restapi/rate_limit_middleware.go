package restapi

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per API key. Each key gets its own
// token bucket; a background sweeper drops buckets that have been idle for
// several windows so the map does not grow without bound.
type RateLimitMiddleware struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucketEntry

	stopOnce sync.Once
	stopCh   chan struct{}
}

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimitMiddleware(limit int, window time.Duration) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucketEntry),
		stopCh:  make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *RateLimitMiddleware) limiterFor(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.buckets[key]
	if !ok {
		entry = &bucketEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(m.limit)/m.window.Seconds()), m.limit),
		}
		m.buckets[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (m *RateLimitMiddleware) sweep() {
	ticker := time.NewTicker(m.window * 10)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.window * 10)
			m.mu.Lock()
			for key, entry := range m.buckets {
				if entry.lastSeen.Before(cutoff) {
					delete(m.buckets, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Handler returns the middleware wrapper.
func (m *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("key")
			if !m.limiterFor(key).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Stop terminates the background sweeper. Idempotent.
func (m *RateLimitMiddleware) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}
