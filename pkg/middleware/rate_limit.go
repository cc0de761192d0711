package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/skill-mint/auth-service/pkg/metrics"
)

// RateLimitCode and RateLimitStrictCode are the 429 body codes; the strict
// variant marks the tighter limiter applied to sensitive endpoints.
const (
	RateLimitCode       = "TOO_MANY_REQUESTS"
	RateLimitStrictCode = "TOO_MANY_REQUESTS_STRICT"
)

// per-key limiter store (simple in-memory token-bucket)
var limiterStore sync.Map // map[string]*rate.Limiter

// getLimiter returns (and lazily creates) a token-bucket limiter for the given key
func getLimiter(key string, rps float64, burst int) *rate.Limiter {
	v, ok := limiterStore.Load(key)
	if ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(rps), burst)
	limiterStore.Store(key, lim)
	return lim
}

// RateLimitMiddleware returns a middleware enforcing a per-client-IP
// token-bucket limit. The limiter runs before the session gate, so the client
// IP is the only keying option. rps = allowed events per second, burst =
// maximum tokens in bucket; code selects the 429 body code.
func RateLimitMiddleware(rps float64, burst int, code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		key := code + ":ip:" + ip

		lim := getLimiter(key, rps, burst)
		if !lim.Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"code":    code,
				"message": "Too many requests. Try again later.",
			})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
