package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/uni-portal/database/dbtest"
	"github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistService_RevokeAndCleanup(t *testing.T) {
	store := dbtest.NewStore(t)
	svc := auth.NewBlacklistService(store.GetDB())
	ctx := context.Background()

	require.NoError(t, svc.RevokeToken(ctx, "live-jti", 0, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "dead-jti", 3, time.Now().Add(-time.Hour), "logout"))

	revoked, err := svc.IsTokenRevoked(ctx, "live-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	// an expired entry no longer matters
	revoked, err = svc.IsTokenRevoked(ctx, "dead-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = svc.IsTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	deleted, err := svc.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := svc.GetBlacklistedTokenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
