// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP and evicts
// buckets that have been idle long enough to be fully refilled.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	limit   rate.Limit
	burst   int
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*ipBucket),
		limit:   limit,
		burst:   burst,
	}
	go l.evictIdle()
	return l
}

func (l *ipLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) bucket(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[ip]; ok {
		b.lastSeen = time.Now()
		return b.limiter
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.buckets[ip] = &ipBucket{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.bucket(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Three tiers: a general API ceiling, a tight budget on credential
// endpoints, and a separate budget for image uploads since each
// listing mutation can carry up to seven files.
var (
	generalLimiter = newIPLimiter(rate.Every(time.Second), 10)
	authLimiter    = newIPLimiter(rate.Every(time.Minute), 5)
	uploadLimiter  = newIPLimiter(rate.Every(time.Minute), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.handler()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.handler()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.handler()
}
