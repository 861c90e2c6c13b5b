package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimit 返回一个基于 Redis 计数器的限流中间件，按客户端 IP 计数。
// Redis 不可用时放行请求，限流是保护措施而不是功能前提。
func RateLimit(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		panic("redis client cannot be nil for RateLimit middleware")
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := client.Get(ctx, key).Int()
		if err != nil && err != redis.Nil {
			logrus.WithError(err).Warn("RateLimit: redis unavailable, letting request through")
			c.Next()
			return
		}
		if count >= maxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "msg": "too many requests"})
			c.Abort()
			return
		}

		pipe := client.TxPipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logrus.WithError(err).Warn("RateLimit: failed to update counter")
		}

		c.Next()
	}
}
