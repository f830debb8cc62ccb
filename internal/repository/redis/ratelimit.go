package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter caps how many inbound messages a single sender may deliver
// per minute. Over-limit messages are acknowledged but not processed.
type RateLimiter struct {
	client    *Client
	perMinute int
	burst     int
}

// NewRateLimiter creates a per-sender rate limiter.
func NewRateLimiter(client *Client, perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:    client,
		perMinute: perMinute,
		burst:     burst,
	}
}

// Allow reports whether the sender is within its per-minute budget.
func (r *RateLimiter) Allow(ctx context.Context, sender string) (bool, error) {
	key := fmt.Sprintf("%s%s", rateLimitPrefix, sender)

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	return incrCmd.Val() <= int64(r.perMinute+r.burst), nil
}
