package redis

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superj80820/url2short/domain"
	redisKit "github.com/superj80820/url2short/kit/redis"
	testingKit "github.com/superj80820/url2short/kit/testing"
	"github.com/superj80820/url2short/kit/testing/container"
)

func TestDecodeCacheRecord(t *testing.T) {
	testCases := []struct {
		scenario string
		value    string
		expected *domain.CacheRecord
	}{
		{
			scenario: "structured record",
			value:    `{"target":"https://example.com","should_warn":true}`,
			expected: domain.CreateStructuredCacheRecord("https://example.com", true),
		},
		{
			scenario: "structured record without should warn",
			value:    `{"target":"https://example.com"}`,
			expected: domain.CreateStructuredCacheRecord("https://example.com", false),
		},
		{
			scenario: "legacy bare target",
			value:    "https://example.com/path?q=1",
			expected: domain.CreateLegacyCacheRecord("https://example.com/path?q=1"),
		},
		{
			scenario: "empty value is a miss",
			value:    "  ",
			expected: nil,
		},
		{
			scenario: "structured record with empty target is a miss",
			value:    `{"target":"","should_warn":true}`,
			expected: nil,
		},
		{
			scenario: "structured record without target is a miss",
			value:    `{"should_warn":false}`,
			expected: nil,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, func(t *testing.T) {
			record, ok := decodeCacheRecord(testCase.value)
			assert.Equal(t, testCase.expected != nil, ok)
			assert.Equal(t, testCase.expected, record)
		})
	}
}

type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func createFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	val, ok := f.values[key]
	return val, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return nil
}

func (f *fakeCache) CapExpire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.values[key]; !ok {
		return false, nil
	}
	if expiration <= 0 {
		delete(f.values, key)
		delete(f.ttls, key)
		return true, nil
	}
	if f.ttls[key] <= expiration {
		return false, nil
	}
	f.ttls[key] = expiration
	return true, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return f.err }

func TestAliasCacheRepo(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		scenario string
		fn       func(t *testing.T)
	}{
		{
			scenario: "set then get uses alias key",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				require.NoError(t, aliasCacheRepo.Set(ctx, "abc123", domain.CreateStructuredCacheRecord("https://example.com", true), time.Hour))
				assert.JSONEq(t, `{"target":"https://example.com","should_warn":true}`, cache.values["alias:abc123"])
				assert.Equal(t, time.Hour, cache.ttls["alias:abc123"])

				record, exists, err := aliasCacheRepo.Get(ctx, "abc123")
				require.NoError(t, err)
				assert.True(t, exists)
				assert.Equal(t, domain.CreateStructuredCacheRecord("https://example.com", true), record)
			},
		},
		{
			scenario: "non positive ttl is not cached",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				require.NoError(t, aliasCacheRepo.Set(ctx, "abc123", domain.CreateStructuredCacheRecord("https://example.com", false), 0))
				_, exists, err := aliasCacheRepo.Get(ctx, "abc123")
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
		{
			scenario: "legacy record is written bare",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				require.NoError(t, aliasCacheRepo.Set(ctx, "abc123", domain.CreateLegacyCacheRecord("https://example.com"), time.Hour))
				assert.Equal(t, "https://example.com", cache.values["alias:abc123"])
			},
		},
		{
			scenario: "json record without target is a miss",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				cache.values["alias:abc123"] = `{"target":"","should_warn":true}`
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				record, exists, err := aliasCacheRepo.Get(ctx, "abc123")
				require.NoError(t, err)
				assert.False(t, exists)
				assert.Nil(t, record)
			},
		},
		{
			scenario: "cap ttl only lowers the lifetime",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				require.NoError(t, aliasCacheRepo.Set(ctx, "abc123", domain.CreateStructuredCacheRecord("https://example.com", false), time.Hour))
				require.NoError(t, aliasCacheRepo.CapTTL(ctx, "abc123", 2*time.Hour))
				assert.Equal(t, time.Hour, cache.ttls["alias:abc123"])

				require.NoError(t, aliasCacheRepo.CapTTL(ctx, "abc123", time.Minute))
				assert.Equal(t, time.Minute, cache.ttls["alias:abc123"])

				require.NoError(t, aliasCacheRepo.CapTTL(ctx, "abc123", 0))
				_, exists, err := aliasCacheRepo.Get(ctx, "abc123")
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
		{
			scenario: "cache error is surfaced",
			fn: func(t *testing.T) {
				cache := createFakeCache()
				cache.err = errors.New("connection refused")
				aliasCacheRepo := CreateAliasCacheRepo(cache)

				_, _, err := aliasCacheRepo.Get(ctx, "abc123")
				assert.Error(t, err)
				assert.Error(t, aliasCacheRepo.Ping(ctx))
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, testCase.fn)
	}
}

func TestAliasCacheRepoRedis(t *testing.T) {
	if !testingKit.EnableContainers() {
		t.Skip("set TEST_WITH_CONTAINERS=true to run redis tests")
	}

	ctx := context.Background()
	redis, err := container.CreateRedis(ctx)
	require.NoError(t, err)
	defer redis.Terminate(ctx)

	cache, err := redisKit.CreateCache(redis.GetURI(), "", 0)
	require.NoError(t, err)
	defer cache.Close()

	aliasCacheRepo := CreateAliasCacheRepo(cache)
	require.NoError(t, aliasCacheRepo.Set(ctx, "abc123", domain.CreateStructuredCacheRecord("https://example.com", false), time.Minute))

	record, exists, err := aliasCacheRepo.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://example.com", record.Target)

	ttl, err := cache.TTL(ctx, "alias:abc123")
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, cache.Set(ctx, "alias:legacy", "https://legacy.example.com", time.Minute))
	record, exists, err = aliasCacheRepo.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, domain.CacheRecordLegacy, record.Format)

	require.NoError(t, aliasCacheRepo.CapTTL(ctx, "abc123", 10*time.Second))
	ttl, err = cache.TTL(ctx, "alias:abc123")
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= 10*time.Second)

	require.NoError(t, aliasCacheRepo.CapTTL(ctx, "abc123", time.Hour))
	ttl, err = cache.TTL(ctx, "alias:abc123")
	require.NoError(t, err)
	assert.True(t, ttl <= 10*time.Second)

	require.NoError(t, aliasCacheRepo.CapTTL(ctx, "missing", time.Minute))
	_, exists, err = aliasCacheRepo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
