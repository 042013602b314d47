package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

type Cache struct {
	redisClient *goRedis.Client
}

type Cmd struct {
	*goRedis.Cmd
}

func (cache *Cache) RunLua(ctx context.Context, script string, keys []string, args ...interface{}) *Cmd {
	luaScript := goRedis.NewScript(script)
	cmd := Cmd{luaScript.Run(ctx, cache.redisClient, keys, args...)}
	return &cmd
}

func (cache *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := cache.redisClient.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.Wrap(err, "set redis failed")
	}
	return nil
}

func (cache *Cache) Del(ctx context.Context, keys ...string) error {
	if err := cache.redisClient.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "delete redis failed")
	}
	return nil
}

const capExpireScript = `
	local ttl = redis.call('PTTL', KEYS[1])
	if (ttl == -2) then
		return 0
	end
	local cap = tonumber(ARGV[1])
	if (ttl == -1 or ttl > cap) then
		redis.call('PEXPIRE', KEYS[1], cap)
		return 1
	end
	return 0
`

// CapExpire lowers the expiration of key to at most expiration. Missing keys
// are left alone.
func (cache *Cache) CapExpire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	if expiration <= 0 {
		if err := cache.Del(ctx, key); err != nil {
			return false, errors.Wrap(err, "cap expire failed")
		}
		return true, nil
	}
	capped, err := cache.RunLua(ctx, capExpireScript, []string{key}, expiration.Milliseconds()).Int()
	if err != nil {
		return false, errors.Wrap(err, "redis run lua script failed")
	}
	return capped == 1, nil
}

func (cache *Cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := cache.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrap(err, "get redis ttl failed")
	}
	return ttl, nil
}

func (cache *Cache) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	val, err = cache.redisClient.Get(ctx, key).Result()
	if err == goRedis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "get redis failed")
	}
	return val, true, nil
}

func (cache *Cache) Ping(ctx context.Context) error {
	if err := cache.redisClient.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping redis failed")
	}
	return nil
}

func (cache *Cache) Close() error {
	return cache.redisClient.Close()
}

func CreateCache(address, password string, dbSelect int) (*Cache, error) {
	redisClient := goRedis.NewClient(&goRedis.Options{
		Addr:     address,
		Password: password,
		DB:       dbSelect,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "redis connect failed")
	}
	return &Cache{redisClient: redisClient}, nil
}
