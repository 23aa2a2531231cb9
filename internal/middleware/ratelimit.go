package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client tracks one rate-limited caller.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory per-IP limiter state. A single service instance is the
// deployment unit here; a distributed store would be needed for
// multi-instance setups.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter allows up to `limit` requests per `window` per client
// IP and answers 429 beyond that.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		entry, ok := clients[ip]
		if !ok || now.Sub(entry.lastSeen) > window {
			entry = &client{lastSeen: now}
			clients[ip] = entry
		}
		entry.count++
		entry.lastSeen = now
		count := entry.count
		rateLimiterLock.Unlock()

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
