package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/skill-mint/auth-service/pkg/metrics"
)

// RedisRateLimitMiddleware provides a fixed-window Redis-backed limiter keyed
// by client IP: INCR a per-window key and compare against max. Deterministic
// and shared across instances, matching the fixed-window contract the auth
// routes were designed around.
func RedisRateLimitMiddleware(client *redis.Client, max int, window time.Duration, code string) gin.HandlerFunc {
	if client == nil {
		// fallback to in-memory if no client
		windowSeconds := window.Seconds()
		if windowSeconds <= 0 {
			windowSeconds = 1
		}
		return RateLimitMiddleware(float64(max)/windowSeconds, max, code)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		// window bucket suffix
		bucket := time.Now().Unix() / int64(windowSeconds)
		redisKey := fmt.Sprintf("rl:%s:ip:%s:%d", code, ip, bucket)

		cnt, err := client.Incr(c.Request.Context(), redisKey).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			return
		}
		if cnt == 1 {
			// set expiration for the bucket
			_ = client.Expire(c.Request.Context(), redisKey, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if int(cnt) > max {
			c.Header("Retry-After", fmt.Sprintf("%d", windowSeconds))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"code":    code,
				"message": "Too many requests. Try again later.",
			})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
