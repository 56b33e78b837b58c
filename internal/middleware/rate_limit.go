package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"advisory-api/internal/config"
)

// RateLimiter implements a simple token bucket rate limiter keyed by client IP
type RateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.Mutex
	rate    int
	window  time.Duration
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rate:    cfg.RequestsPerMin,
		window:  cfg.WindowSize,
	}

	go rl.cleanupLoop()

	return rl
}

// Handler returns a gin middleware enforcing the limit
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, ok := rl.clients[clientIP]
	if !ok || now.Sub(bucket.lastRefill) >= rl.window {
		rl.clients[clientIP] = &clientBucket{tokens: rl.rate - 1, lastRefill: now}
		return true
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

// cleanupLoop drops buckets idle for several windows
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-3 * rl.window)
		for ip, bucket := range rl.clients {
			if bucket.lastRefill.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
