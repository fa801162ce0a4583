package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trendora/trendora-backend/internal/errors"
	appRedis "github.com/trendora/trendora-backend/pkg/redis"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 30 // writes per client per minute
)

// RateLimiter applies a fixed-window per-IP limit to write endpoints using
// Redis INCR/EXPIRE. Fails open when Redis is unavailable.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := appRedis.GetClient()
		if client == nil {
			c.Next()
			return
		}

		log := GetLoggerFromContext(c)
		key := "rate_limit:" + c.ClientIP()

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("Rate limit check failed, allowing request", map[string]interface{}{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		// First hit in the window starts the expiry clock
		if count == 1 {
			client.Expire(c.Request.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"ip":    c.ClientIP(),
				"count": count,
			})
			errors.RespondWithError(c, http.StatusTooManyRequests, errors.RateLimitExceeded, "Too many requests. Please slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
