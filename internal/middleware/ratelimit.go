package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tickerpulse/internal/domain/dto"
)

type client struct {
	windowStart time.Time
	count       int
}

type limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (l *limiter) allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= l.window {
		l.clients[ip] = &client{windowStart: now, count: 1}
		l.sweep(now)
		return true, 0
	}
	cl.count++
	if cl.count > l.limit {
		return false, l.window - now.Sub(cl.windowStart)
	}
	return true, 0
}

// sweep forgets clients whose window closed; it runs when a new window opens.
func (l *limiter) sweep(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.windowStart) >= l.window {
			delete(l.clients, ip)
		}
	}
}

// RateLimiter allows up to limit requests per window for each client IP.
// A non-positive limit disables limiting.
//
// Response when the limit is exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 42
//	{"message": "rate limit exceeded", ...}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	l := &limiter{clients: map[string]*client{}, limit: limit, window: window, now: time.Now}
	return func(c *gin.Context) {
		ok, retry := l.allow(c.ClientIP())
		if !ok {
			secs := int(retry.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
