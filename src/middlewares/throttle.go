package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "throttle:bookings:"

// BookingThrottle limits requests per client IP to limit per window using a
// fixed redis counter. Redis failures let the request through; a nil client
// disables the check.
func BookingThrottle(rdb *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if rdb == nil || limit <= 0 {
			ctx.Next()
			return
		}
		key := fmt.Sprintf("%s%s", throttleKeyPrefix, ctx.ClientIP())
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[throttle] incr %s: %s\n", key, err.Error())
			ctx.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("[throttle] expire %s: %s\n", key, err.Error())
			}
		}
		if count > limit {
			ctx.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Request was throttled."})
			return
		}
		ctx.Next()
	}
}
