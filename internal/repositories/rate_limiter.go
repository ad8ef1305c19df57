package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cursedbuild/storefront/internal/config"
	"github.com/cursedbuild/storefront/internal/logging"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter counts login attempts per identifier over a sliding window.
// Every attempt counts, successful or not.
type LoginRateLimiter interface {
	// Returns isAllowed, attempts left, seconds to wait, error
	CheckLoginRateLimit(ctx context.Context, identifier string) (bool, int, int, error)
}

type redisRateLimiter struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

type RateLimiterOption func(*redisRateLimiter)

func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *redisRateLimiter) { r.now = now }
}

func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig, opts ...RateLimiterOption) LoginRateLimiter {
	r := &redisRateLimiter{client: client, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func LoginAttemptsKey(identifier string) string {
	return fmt.Sprintf("login_attempts:%s", identifier)
}

// LoginIdentifier scopes an email to the registry it is checked against, so one
// device cannot use up another device's attempts.
func LoginIdentifier(scope, email string) string {
	if scope == "" {
		return email
	}

	return scope + ":" + email
}

// Attempts are members of a sorted set scored by unix seconds; entries older
// than the window are trimmed before counting.
func (r *redisRateLimiter) CheckLoginRateLimit(ctx context.Context, identifier string) (bool, int, int, error) {

	logger := logging.FromContext(ctx)

	key := LoginAttemptsKey(identifier)

	current := r.now()
	now := current.Unix()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now - window

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: current.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", "key", key, "error", err)
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.MaxAttempts - attempts

	if attempts > r.cfg.MaxAttempts {

		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
			Key: key, Start: 0, Stop: 0,
		}).Result()
		if err == nil && len(scores) == 0 {
			err = errors.New("no attempts recorded")
		}
		if err != nil {
			logger.Error("Failed to get oldest attempt time for rate limit", "key", key, "error", err)
			return false, 0, int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldest := int64(scores[0].Score)
		retryAfter := max(oldest+window-now, 0)

		logger.Warn("Rate limit exceeded for login", "identifier", identifier, "attempts", attempts)
		return false, 0, int(retryAfter), nil
	}

	logger.Debug("Rate limit check passed", "identifier", identifier, "attempts", attempts, "remaining", remaining)
	return true, int(remaining), 0, nil
}
