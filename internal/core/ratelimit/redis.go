package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a sliding-window limiter backed by a shared redis store.
// It keeps per-key request timestamps in sorted sets so that multiple server
// instances share one admission window.
type RedisLimiter struct {
	rdb    *redis.Client
	cfg    Config
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a redis-backed limiter. The prefix namespaces keys
// so the creation and voting limiters don't collide on the same store.
func NewRedisLimiter(rdb *redis.Client, cfg Config, prefix string) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		cfg:    cfg,
		prefix: prefix,
		now:    time.Now,
	}
}

// Check applies the same dual-key sliding window as MemoryLimiter, with the
// timestamp history held in redis sorted sets scored by unix nanos.
func (l *RedisLimiter) Check(ctx context.Context, origin, actorID string) (Decision, error) {
	now := l.now()

	for _, key := range []string{l.key(originKey(origin)), l.key(actorKey(origin, actorID))} {
		decision, err := l.checkKey(ctx, key, now)
		if err != nil {
			return Decision{}, err
		}
		if !decision.Allowed {
			return decision, nil
		}
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	pipe := l.rdb.Pipeline()
	for _, key := range []string{l.key(originKey(origin)), l.key(actorKey(origin, actorID))} {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
		pipe.Expire(ctx, key, l.cfg.Window)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to record rate limit timestamp: %w", err)
	}

	return Decision{Allowed: true}, nil
}

// checkKey prunes stale entries and evaluates one key's window.
func (l *RedisLimiter) checkKey(ctx context.Context, key string, now time.Time) (Decision, error) {
	cutoff := now.Add(-l.cfg.Window).UnixNano()

	pipe := l.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to prune rate limit window: %w", err)
	}

	if countCmd.Val() < int64(l.cfg.MaxRequests) {
		return Decision{Allowed: true}, nil
	}

	oldest, err := l.rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to read oldest rate limit entry: %w", err)
	}

	retryAfter := l.cfg.Window
	if len(oldest) > 0 {
		oldestAt := time.Unix(0, int64(oldest[0].Score))
		retryAfter = oldestAt.Add(l.cfg.Window).Sub(now)
	}

	return Decision{RetryAfter: retryAfter}, nil
}

func (l *RedisLimiter) key(suffix string) string {
	return l.prefix + ":" + suffix
}
