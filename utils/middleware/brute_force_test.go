package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sahilchouksey/uni-portal/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockoutFor(t *testing.T) {
	tests := []struct {
		attempts int64
		want     time.Duration
	}{
		{1, 0},
		{4, 0},
		{5, 2 * time.Minute},
		{9, 2 * time.Minute},
		{10, time.Hour},
		{25, 24 * time.Hour},
		{100, 24 * time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LockoutFor(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestBruteForceProtection_NilIsNoop(t *testing.T) {
	var b *BruteForceProtection
	assert.Nil(t, NewBruteForceProtection(nil))

	ctx := context.Background()
	assert.NoError(t, b.RecordFailedAttempt(ctx, "1.2.3.4"))
	assert.NoError(t, b.RecordSuccessfulAttempt(ctx, "1.2.3.4"))
	locked, err := b.IsIPLocked(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, locked)

	app := fiber.New()
	app.Post("/login", b.CheckLockout(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBruteForceProtection_LocksAfterFiveFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	b := NewBruteForceProtection(cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
	ctx := context.Background()
	ip := "10.0.0.1"

	for i := 0; i < 4; i++ {
		require.NoError(t, b.RecordFailedAttempt(ctx, ip))
	}
	locked, err := b.IsIPLocked(ctx, ip)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, b.RecordFailedAttempt(ctx, ip))
	locked, err = b.IsIPLocked(ctx, ip)
	require.NoError(t, err)
	assert.True(t, locked)

	// other addresses are unaffected
	locked, err = b.IsIPLocked(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, b.RecordSuccessfulAttempt(ctx, ip))
	locked, err = b.IsIPLocked(ctx, ip)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestBruteForceProtection_ReportsRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	b := NewBruteForceProtection(cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})))
	mr.Close()

	ctx := context.Background()
	assert.Error(t, b.RecordFailedAttempt(ctx, "10.0.0.1"))
	assert.Error(t, b.RecordSuccessfulAttempt(ctx, "10.0.0.1"))
}
