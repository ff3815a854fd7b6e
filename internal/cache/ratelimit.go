package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitPrefix is the Redis key prefix for fixed-window counters.
const rateLimitPrefix = "ratelimit:auth:"

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// fixedWindowScript implements an atomic fixed-window counter.
// The first request in a window creates the key with the window TTL;
// later requests increment it. Increment-and-compare happens in a single
// script execution, so concurrent requests from one source cannot race.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_ms = tonumber(ARGV[1])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('PEXPIRE', key, window_ms)
	end

	local ttl_ms = redis.call('PTTL', key)
	if ttl_ms < 0 then
		-- Key lost its TTL (e.g. manual intervention); restore the window.
		redis.call('PEXPIRE', key, window_ms)
		ttl_ms = window_ms
	end

	return {count, ttl_ms}
`)

// CheckAuthRateLimit counts a request from the given source IP against the
// shared fixed window and reports whether it is within the limit. The window
// resets on a time boundary, never by request count.
func (c *Cache) CheckAuthRateLimit(ctx context.Context, ip string, limit int, window time.Duration) (*RateLimitResult, error) {
	key := rateLimitPrefix + hashIP(ip)

	result, err := fixedWindowScript.Run(ctx, c.client,
		[]string{key},
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}

	count := result[0]
	ttl := time.Duration(result[1]) * time.Millisecond

	res := &RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: int64(limit) - count,
		ResetAt:   time.Now().Add(ttl),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}

	return res, nil
}

// hashIP creates a truncated SHA256 hash of an IP address.
// This provides privacy while maintaining uniqueness.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
