package middleware

import (
	"net/http"
	"sync"
	"time"

	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// IPRateLimiter keeps one token bucket per client ip
type IPRateLimiter struct {
	ips map[string]*visitor
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter starts a janitor that forgets idle ips; it runs for the
// life of the process.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		ips: make(map[string]*visitor),
		r:   r,
		b:   b,
	}
	go i.cleanupVisitors()
	return i
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.ips[ip]
	if !ok {
		limiter := rate.NewLimiter(i.r, i.b)
		i.ips[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (i *IPRateLimiter) cleanupVisitors() {
	for {
		time.Sleep(cleanupInterval)
		i.evictIdle(time.Now())
	}
}

func (i *IPRateLimiter) evictIdle(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(i.ips, ip)
		}
	}
}

// RateLimitMiddleware allows rps requests per second per ip with the given burst.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			utils.APIError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
