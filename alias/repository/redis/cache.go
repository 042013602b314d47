package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
)

type cacheKit interface {
	Get(ctx context.Context, key string) (val string, exists bool, err error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	CapExpire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	Ping(ctx context.Context) error
}

type cacheRecord struct {
	Target     string `json:"target"`
	ShouldWarn bool   `json:"should_warn"`
}

type aliasCacheRepo struct {
	cache cacheKit
}

func CreateAliasCacheRepo(cache cacheKit) domain.AliasCacheRepo {
	return &aliasCacheRepo{
		cache: cache,
	}
}

func (a *aliasCacheRepo) Get(ctx context.Context, code string) (*domain.CacheRecord, bool, error) {
	val, exists, err := a.cache.Get(ctx, domain.AliasCacheKey(code))
	if err != nil {
		return nil, false, errors.Wrap(err, "get alias cache failed")
	}
	if !exists {
		return nil, false, nil
	}
	record, ok := decodeCacheRecord(val)
	if !ok {
		return nil, false, nil
	}
	return record, true, nil
}

func (a *aliasCacheRepo) Set(ctx context.Context, code string, record *domain.CacheRecord, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	value, err := encodeCacheRecord(record)
	if err != nil {
		return errors.Wrap(err, "encode cache record failed")
	}
	if err := a.cache.Set(ctx, domain.AliasCacheKey(code), value, ttl); err != nil {
		return errors.Wrap(err, "set alias cache failed")
	}
	return nil
}

func (a *aliasCacheRepo) CapTTL(ctx context.Context, code string, ttl time.Duration) error {
	if _, err := a.cache.CapExpire(ctx, domain.AliasCacheKey(code), ttl); err != nil {
		return errors.Wrap(err, "cap alias cache ttl failed")
	}
	return nil
}

func (a *aliasCacheRepo) Ping(ctx context.Context) error {
	return a.cache.Ping(ctx)
}

func encodeCacheRecord(record *domain.CacheRecord) (string, error) {
	if record.Format == domain.CacheRecordLegacy {
		return record.Target, nil
	}
	marshalData, err := json.Marshal(cacheRecord{
		Target:     record.Target,
		ShouldWarn: record.ShouldWarn,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal failed")
	}
	return string(marshalData), nil
}

// decodeCacheRecord reads the JSON form first and falls back to a bare target
// string written by older deployments only when the value is not JSON. Empty
// values and JSON records without a target are treated as a miss.
func decodeCacheRecord(val string) (*domain.CacheRecord, bool) {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil, false
	}
	if strings.HasPrefix(trimmed, "{") {
		var record cacheRecord
		if err := json.Unmarshal([]byte(trimmed), &record); err == nil {
			if record.Target == "" {
				return nil, false
			}
			return domain.CreateStructuredCacheRecord(record.Target, record.ShouldWarn), true
		}
	}
	return domain.CreateLegacyCacheRecord(trimmed), true
}
