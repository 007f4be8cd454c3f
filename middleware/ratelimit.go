package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// bucket tracks the token balance for a single client IP.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter applies a per-IP token bucket to incoming requests. Buckets
// that have gone unused for an hour are dropped to keep the map bounded.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	bucketSize float64 // maximum tokens
	lastSweep  time.Time
}

func NewRateLimiter(rate float64, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		bucketSize: bucketSize,
		lastSweep:  time.Now(),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := time.Now()

		b, exists := rl.buckets[ip]
		if !exists {
			b = &bucket{tokens: rl.bucketSize, lastRefill: now}
			rl.buckets[ip] = b
		}

		// Refill tokens based on time elapsed
		elapsed := now.Sub(b.lastRefill).Seconds()
		b.tokens = min(rl.bucketSize, b.tokens+elapsed*rl.rate)
		b.lastRefill = now

		if b.tokens < 1 {
			rl.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		b.tokens--
		rl.sweepLocked(now)
		rl.mu.Unlock()

		c.Next()
	}
}

// sweepLocked drops buckets idle for over an hour. Caller holds rl.mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < time.Hour {
		return
	}
	for ip, b := range rl.buckets {
		if now.Sub(b.lastRefill) > time.Hour {
			delete(rl.buckets, ip)
		}
	}
	rl.lastSweep = now
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
