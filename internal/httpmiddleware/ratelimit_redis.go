package httpmiddleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed-window per-key limiter backed by Redis INCR/EXPIRE,
// shared across instances.
type RedisWindow struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisWindow creates a limiter allowing limit requests per window.
func NewRedisWindow(client *redis.Client, prefix string, limit int, window time.Duration) *RedisWindow {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisWindow{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow implements Limiter. Redis errors fail open so a limiter outage never
// takes down the API.
func (l *RedisWindow) Allow(c *gin.Context, key string) bool {
	ctx := c.Request.Context()
	redisKey := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		_ = l.client.Expire(ctx, redisKey, l.window).Err()
	}
	return count <= int64(l.limit)
}
