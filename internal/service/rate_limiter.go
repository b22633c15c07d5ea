package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// slidingWindowScript throttles atomically in redis: each granted request
// becomes a ZSET member scored by its unix second, members older than the
// window are pruned, and the reset time is derived from the oldest survivor.
// One script keeps check-and-record race-free across server instances.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local ts = tonumber(ARGV[1])
local win = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', ts - win)

if redis.call('ZCARD', key) >= max then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    if #oldest >= 2 then
        return {0, tonumber(oldest[2]) + win}
    end
    return {0, ts + win}
end

redis.call('ZADD', key, ts, ts .. '-' .. math.random())
redis.call('EXPIRE', key, win + 10)
return {1, ts + win}
`)

// RateLimiter throttles the public chat surface so one shopper cannot burn
// the AI budget. Keys are arbitrary caller identities; the chat middleware
// uses client IPs.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckLimit reports whether one more request under key fits inside the
// sliding window, and when the window resets. Redis trouble fails closed:
// a throttled shopper is cheaper than unmetered AI spend.
func (rl *RateLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, resetAt time.Time) {
	now := time.Now().Unix()

	result, err := slidingWindowScript.Run(
		ctx, rl.client,
		[]string{"throttle:" + key},
		now, int64(window.Seconds()), limit,
	).Int64Slice()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, denying request")
		return false, time.Now().Add(window)
	}
	if len(result) != 2 {
		log.Warn().Str("key", key).Msg("unexpected rate limit script result, denying request")
		return false, time.Now().Add(window)
	}

	return result[0] == 1, time.Unix(result[1], 0)
}
