package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hackadmin/internal/domain"
	"hackadmin/pkg/redis"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewCacheService(client, zap.NewNop())
}

func TestCached_MissThenHit(t *testing.T) {
	_, cache := setupCache(t)
	ctx := context.Background()
	key := cache.Keys().KeyJudges()

	calls := 0
	load := func(ctx context.Context) ([]domain.Judge, error) {
		calls++
		return []domain.Judge{{ID: 1, Name: "Asha", Email: "asha@example.com"}}, nil
	}

	first, err := cached(ctx, cache, key, redis.TTLJudges, load)
	require.NoError(t, err)
	second, err := cached(ctx, cache, key, redis.TTLJudges, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCached_ErrorsAreNotStored(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()
	key := cache.Keys().KeyJudges()

	_, err := cached(ctx, cache, key, redis.TTLJudges, func(ctx context.Context) ([]domain.Judge, error) {
		return nil, errors.New("backend down")
	})
	require.Error(t, err)
	assert.False(t, mr.Exists(key))
}

func TestCached_CorruptEntryFallsBack(t *testing.T) {
	mr, cache := setupCache(t)
	key := cache.Keys().KeyJudges()
	require.NoError(t, mr.Set(key, "{not json"))

	judges, err := cached(context.Background(), cache, key, redis.TTLJudges, func(ctx context.Context) ([]domain.Judge, error) {
		return []domain.Judge{{ID: 7}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, judges[0].ID)
}

func TestCached_DisabledPassesThrough(t *testing.T) {
	cache := NewCacheService(nil, nil)
	assert.False(t, cache.Enabled())
	assert.Nil(t, cache.Keys())

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := cached(context.Background(), cache, "ignored", redis.TTLJudges, func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, cache.HealthCheck(context.Background()))
}

func TestCacheService_InvalidatePattern(t *testing.T) {
	mr, cache := setupCache(t)
	ctx := context.Background()
	keys := cache.Keys()

	require.NoError(t, mr.Set(keys.KeyPanels([]string{"CSE"}), "[]"))
	require.NoError(t, mr.Set(keys.KeyPanels([]string{"IT"}), "[]"))
	require.NoError(t, mr.Set(keys.KeyJudges(), "[]"))

	cache.InvalidatePattern(ctx, keys.PatternPanels())

	assert.False(t, mr.Exists(keys.KeyPanels([]string{"CSE"})))
	assert.False(t, mr.Exists(keys.KeyPanels([]string{"IT"})))
	assert.True(t, mr.Exists(keys.KeyJudges()))

	cache.Invalidate(ctx, keys.KeyJudges())
	assert.False(t, mr.Exists(keys.KeyJudges()))
}
