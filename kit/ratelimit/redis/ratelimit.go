package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	redisKit "github.com/superj80820/url2short/kit/redis"
)

const passScript = `
	local key = KEYS[1]
	local requests = tonumber(redis.call('GET', key) or '-1')
	local max_requests = tonumber(ARGV[1])
	local expiry = tonumber(ARGV[2])
	if (requests == -1) then
		redis.call('INCR', key)
		redis.call('EXPIRE', key, expiry)
		return {1, 1, expiry}
	end

	local cur_expiry = tonumber(redis.call('TTL', key) or '-1')
	if (requests < max_requests) then
		redis.call('INCR', key)
		return {1, requests + 1, cur_expiry}
	else
		return {0, requests, cur_expiry}
	end
`

// CacheRateLimit is a fixed window request counter kept in redis.
type CacheRateLimit struct {
	cache       *redisKit.Cache
	maxRequests int
	expiry      int
}

func CreateCacheRateLimit(cache *redisKit.Cache, maxRequests, expiry int) *CacheRateLimit {
	return &CacheRateLimit{cache: cache, maxRequests: maxRequests, expiry: expiry}
}

func (c *CacheRateLimit) Pass(ctx context.Context, key string) (pass bool, lastRequests, curExpiry int, err error) {
	result, err := c.cache.RunLua(ctx, passScript, []string{key}, c.maxRequests, c.expiry).Slice()
	if err != nil {
		return false, 0, 0, errors.Wrap(err, "redis run lua script failed")
	}
	if len(result) != 3 {
		return false, 0, 0, errors.Errorf("unexpected lua result length %d", len(result))
	}
	pass, err = toBool(result[0])
	if err != nil {
		return false, 0, 0, errors.Wrap(err, "convert result failed")
	}
	curRequests, ok := result[1].(int64)
	if !ok {
		return false, 0, 0, errors.Errorf("unexpected requests type %T", result[1])
	}
	expiry, ok := result[2].(int64)
	if !ok {
		return false, 0, 0, errors.Errorf("unexpected expiry type %T", result[2])
	}
	return pass, c.maxRequests - int(curRequests), int(expiry), nil
}

func toBool(val interface{}) (bool, error) {
	if val == nil {
		return false, nil
	}

	switch val := val.(type) {
	case bool:
		return val, nil
	case int64:
		return val != 0, nil
	case string:
		return strconv.ParseBool(val)
	default:
		return false, errors.New(fmt.Sprintf("unexpected type=%T for Bool", val))
	}
}
