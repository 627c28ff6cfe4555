package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client in fixed windows. Each client's
// window starts at its first request, so one busy client does not reset the
// counters of the others.
type RateLimiter struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	limit     int
	window    time.Duration
	lastSweep time.Time
}

type windowCounter struct {
	start time.Time
	count int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counters:  make(map[string]*windowCounter),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow records a request for the key and reports whether it is within the
// limit
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweepStale(now)

	counter := l.counters[key]
	if counter == nil || now.Sub(counter.start) > l.window {
		l.counters[key] = &windowCounter{start: now, count: 1}
		return true
	}

	if counter.count >= l.limit {
		return false
	}
	counter.count++
	return true
}

// sweepStale drops expired counters so clients that stopped sending do not
// leak entries. At most one sweep per window. Must be called with lock held.
func (l *RateLimiter) sweepStale(now time.Time) {
	if now.Sub(l.lastSweep) <= l.window {
		return
	}
	for key, counter := range l.counters {
		if now.Sub(counter.start) > l.window {
			delete(l.counters, key)
		}
	}
	l.lastSweep = now
}

// RateLimit middleware limits requests per client IP
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			slog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
