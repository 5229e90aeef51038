package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var rlMu sync.Mutex
var clients = make(map[string]*clientInfo)

// SimpleRateLimit is the in-process fallback limiter used when Redis is not
// configured. Same fixed-window behavior as RedisRateLimit, per IP, but local
// to one server instance.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rlMu.Lock()
		ci, ok := clients[ip]
		if !ok {
			ci = &clientInfo{last: time.Now(), count: 1}
			clients[ip] = ci
			rlMu.Unlock()
			c.Next()
			return
		}

		now := time.Now()
		if now.Sub(ci.last) > window {
			ci.last = now
			ci.count = 1
			rlMu.Unlock()
			c.Next()
			return
		}

		ci.count++
		rlMu.Unlock()

		if ci.count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// RateLimit picks the Redis limiter when it is configured and falls back to
// the in-process one otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	redisLimited := RedisRateLimit(maxRequests, window)
	localLimited := SimpleRateLimit(maxRequests, window)
	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimited(c)
			return
		}
		localLimited(c)
	}
}
