package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in a fixed window shared by every
// process pointing at the same redis.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

var windowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := windowScript.Run(ctx, l.rdb, []string{"ratelimit:" + key}, l.window.Milliseconds()).Int64()

	if err != nil {
		return true, err
	}

	return n <= int64(l.limit), nil
}
