package catalog_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sahilchouksey/uni-portal/database/dbtest"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/services/catalog"
	"github.com/sahilchouksey/uni-portal/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CachesAndInvalidates(t *testing.T) {
	store := dbtest.NewStore(t)
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	svc := catalog.NewService(store, redisCache)
	ctx := context.Background()

	require.NoError(t, svc.AddUniversity(ctx, &model.University{Name: "First"}))

	list, err := svc.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, mr.Exists(cache.KeyPrefix + "universities:all"))

	// a row written behind the service is not visible until invalidation
	require.NoError(t, store.CreateUniversity(ctx, &model.University{Name: "Hidden"}))
	list, err = svc.ListUniversities(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.AddUniversity(ctx, &model.University{Name: "Third"}))
	assert.False(t, mr.Exists(cache.KeyPrefix + "universities:all"))

	list, err = svc.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "First", list[0].Name)
	assert.Equal(t, "Third", list[2].Name)
}

func TestService_WithoutCache(t *testing.T) {
	store := dbtest.NewStore(t)
	svc := catalog.NewService(store, nil)
	ctx := context.Background()

	list, err := svc.ListUniversities(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.AddUniversity(ctx, &model.University{Name: "Only"}))
	list, err = svc.ListUniversities(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_CacheDownFallsBackToStore(t *testing.T) {
	store := dbtest.NewStore(t)
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	svc := catalog.NewService(store, redisCache)
	ctx := context.Background()

	require.NoError(t, store.CreateUniversity(ctx, &model.University{Name: "Standalone"}))
	mr.Close()

	list, err := svc.ListUniversities(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
