// Package ratelimit implements a fixed window request limiter on top of redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightservices/config"
	"github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// The first hit of a window sets its expiry; later hits only count.
var windowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {current, redis.call('PTTL', KEYS[1])}
`)

type RedisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisLimiter(client redis.Scripter, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  cfg.Requests,
		window: cfg.Window(),
		prefix: cfg.Prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	vals, err := windowScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("rate limit %s: unexpected script result %v", key, vals)
	}
	return evaluate(l.limit, vals[0], time.Duration(vals[1])*time.Millisecond), nil
}

func (l *RedisLimiter) key(key string) string {
	return l.prefix + ":" + key
}

func evaluate(limit int, count int64, ttl time.Duration) Result {
	res := Result{Limit: limit, Allowed: count <= int64(limit)}
	if remaining := int64(limit) - count; remaining > 0 {
		res.Remaining = int(remaining)
	}
	if !res.Allowed {
		res.RetryAfter = max(ttl, 0)
	}
	return res
}

var _ Limiter = (*RedisLimiter)(nil)
