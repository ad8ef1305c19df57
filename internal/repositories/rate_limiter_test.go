package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cursedbuild/storefront/internal/config"
	repository "github.com/cursedbuild/storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := context.Background()
	email := "a@x.com"
	key := repository.LoginAttemptsKey(email)
	cfg := config.RateConfig{Enabled: true, MaxAttempts: 3, WindowSize: 15 * time.Second}
	fixed := time.Unix(1700000100, 42)
	now := fixed.Unix()

	setup := func(t *testing.T) (repository.LoginRateLimiter, redismock.ClientMock) {
		t.Helper()
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepo(client, cfg, repository.WithClock(func() time.Time { return fixed }))

		return limiter, mock
	}

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now-15)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: fixed.UnixNano()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, cfg.WindowSize).SetVal(true)
	}

	t.Run("Allowed", func(t *testing.T) {
		limiter, mock := setup(t)
		expectPipeline(mock, 1)

		allowed, remaining, retryAfter, err := limiter.CheckLoginRateLimit(ctx, email)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
		assert.Equal(t, 0, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Last allowed attempt", func(t *testing.T) {
		limiter, mock := setup(t)
		expectPipeline(mock, 3)

		allowed, remaining, _, err := limiter.CheckLoginRateLimit(ctx, email)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Blocked", func(t *testing.T) {
		limiter, mock := setup(t)
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now - 10), Member: "x"}})

		allowed, remaining, retryAfter, err := limiter.CheckLoginRateLimit(ctx, email)

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.Equal(t, 5, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pipeline failure", func(t *testing.T) {
		limiter, mock := setup(t)
		redisErr := errors.New("redis down")
		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now-15)).SetErr(redisErr)

		allowed, _, _, err := limiter.CheckLoginRateLimit(ctx, email)

		require.Error(t, err)
		assert.False(t, allowed)
		assert.Contains(t, err.Error(), "redis pipeline error for rate limit check")
	})
}

func TestLoginIdentifier(t *testing.T) {
	assert.Equal(t, "a@x.com", repository.LoginIdentifier("", "a@x.com"))
	assert.Equal(t, "d1:a@x.com", repository.LoginIdentifier("d1", "a@x.com"))
	assert.Equal(t, "login_attempts:d1:a@x.com", repository.LoginAttemptsKey(repository.LoginIdentifier("d1", "a@x.com")))
}
