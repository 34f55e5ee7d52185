// Package ratelimit throttles the credential endpoints. A redis-backed fixed
// window is used when redis is configured so the limit holds across
// processes; otherwise an in-memory window applies per process.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}

type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	clients map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.clients[key]

	if !ok || now.After(b.windowEnd) {
		l.clients[key] = &bucket{count: 1, windowEnd: now.Add(l.window)}
		return true, nil
	}

	if b.count >= l.limit {
		return false, nil
	}

	b.count++

	return true, nil
}

// Middleware enforces the limit for a key derived from the request, falling
// back to the client IP. Limiter failures fail open: throttling is best
// effort, auth still applies.
func Middleware(l Limiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""

		if keyFn != nil {
			key = keyFn(c)
		}

		if key == "" {
			key = clientIP(c)
		}

		ok, err := l.Allow(c.Request.Context(), key)

		if err == nil && !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "rate_limited",
					"message": "Too many requests, slow down.",
				},
			})
			return
		}

		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)

	if err != nil {
		return c.Request.RemoteAddr
	}

	return host
}
