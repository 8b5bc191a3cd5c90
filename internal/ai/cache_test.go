// internal/ai/cache_test.go
package ai

import (
	"context"
	"testing"
	"time"

	"card-advisor/internal/common/logger"
	"card-advisor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*StructuringCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStructuringCache(client, 10*time.Minute, logger.NewTestLogger(t)), mr
}

func TestStructuringCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	payload := []byte(`{"age":"I am 30"}`)
	profile := models.UserProfile{
		Spending:       20000,
		Age:            30,
		Income:         60000,
		EmploymentType: models.EmploymentSalaried,
		RewardType:     "Shopping",
	}

	_, ok := cache.Get(ctx, payload)
	assert.False(t, ok, "empty cache misses")

	cache.Set(ctx, payload, profile)

	got, ok := cache.Get(ctx, payload)
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestStructuringCache_KeyedByPayload(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, []byte(`{"age":"30"}`), models.UserProfile{Age: 30})

	_, ok := cache.Get(ctx, []byte(`{"age":"31"}`))
	assert.False(t, ok, "different answers never share an entry")
}

func TestStructuringCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	payload := []byte(`{"age":"30"}`)

	cache.Set(ctx, payload, models.UserProfile{Age: 30})
	mr.FastForward(11 * time.Minute)

	_, ok := cache.Get(ctx, payload)
	assert.False(t, ok)
}

func TestStructuringCache_CorruptEntryMisses(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	payload := []byte(`{"age":"30"}`)

	require.NoError(t, mr.Set(cacheKey(payload), "not-json"))

	_, ok := cache.Get(ctx, payload)
	assert.False(t, ok)
}

func TestStructurer_ServesFromCache(t *testing.T) {
	cache, _ := newTestCache(t)
	gen := &fakeGenerator{response: `{"rewardType": "Shopping", "spending": 20000, "age": 30, "income": 60000, "employmentType": "salaried"}`}
	s := NewStructurer(gen, cache, time.Second, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := s.Structure(ctx, sampleAnswers())
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)

	second, err := s.Structure(ctx, sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls, "second call never reaches the model")
	assert.Equal(t, first, second)
}
