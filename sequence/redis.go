package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// incrScript 在一次原子执行内完成“读取-缺省-写回加一”，
// 并发调用由 Redis 的脚本原子性串行化.
const incrScript = `
local v = redis.call('GET', KEYS[1])
if v == false then
	v = tonumber(ARGV[1])
else
	v = tonumber(v)
end
redis.call('SET', KEYS[1], v + 1)
return v
`

// RedisStore 基于 Redis Lua 脚本的存储实现.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	script    *redis.Script
}

// NewRedisStore 创建 Redis 存储，keyPrefix 为空时使用 "genkit:seq".
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "genkit:seq"
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		script:    redis.NewScript(incrScript),
	}
}

// Increment 返回当前值并原子加一，缺失键以 start 作为当前值.
func (s *RedisStore) Increment(ctx context.Context, name string, start int64) (int64, error) {
	key := fmt.Sprintf("%s:%s", s.keyPrefix, name)

	v, err := s.script.Run(ctx, s.client, []string{key}, start).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis increment %q: %w", name, err)
	}

	return v, nil
}
