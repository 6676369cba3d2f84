package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Store decides whether a client key may proceed. The in-process
// implementation below suits single-instance deployments; multi-instance
// deployments can inject a store backed by shared state.
type Store interface {
	Allow(key string) bool
}

// MemoryStore keeps one token bucket per client key.
type MemoryStore struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	maxIdle  time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryStore creates an in-process store with explicit window
// parameters: rps tokens per second, bucket size burst.
func NewMemoryStore(rps float64, burst int) *MemoryStore {
	return &MemoryStore{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		maxIdle:  10 * time.Minute,
	}
}

// Allow implements Store.
func (m *MemoryStore) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	cl, exists := m.limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(m.rate, m.burst)}
		m.limiters[key] = cl
	}
	cl.lastSeen = now

	// Opportunistic eviction keeps the map bounded without a ticker.
	if len(m.limiters) > 10000 {
		for k, v := range m.limiters {
			if now.Sub(v.lastSeen) > m.maxIdle {
				delete(m.limiters, k)
			}
		}
	}

	return cl.limiter.Allow()
}

// RateLimiter throttles requests per client IP against the injected store.
type RateLimiter struct {
	store Store
}

// NewRateLimiter creates a rate limiter backed by the given store.
func NewRateLimiter(store Store) *RateLimiter {
	return &RateLimiter{store: store}
}

// RateLimit returns the gin middleware.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.store.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
