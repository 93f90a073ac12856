package token

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/genkit/random"
)

const (
	// nonceBytes 绑定值的随机字节数.
	nonceBytes = 16
	// bindingAttempts 碰撞重试上限；16 字节随机下碰撞概率可忽略，重试只是兜底.
	bindingAttempts = 3
)

// ErrBindingCollision 多次尝试后绑定值仍然撞键.
var ErrBindingCollision = errors.New("token: binding nonce collision")

// RedisBinder 基于 Redis 的一次性绑定实现：
// 为 action 生成随机 nonce，以 SET NX + TTL 落键；
// 消费方通过 Consume 校验并删除，保证一次性语义.
type RedisBinder struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	secure    random.Source
}

// NewRedisBinder 创建 Redis 绑定服务.
// keyPrefix 为空时使用 "genkit:binding"，ttl 非正时使用 10 分钟.
func NewRedisBinder(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisBinder {
	if keyPrefix == "" {
		keyPrefix = "genkit:binding"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &RedisBinder{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		secure:    random.NewSecure(),
	}
}

// CreateBinding 为 action 产生一次性绑定值.
func (b *RedisBinder) CreateBinding(ctx context.Context, action string) (string, error) {
	for range bindingAttempts {
		buf := make([]byte, nonceBytes)
		if err := b.secure.Bytes(buf); err != nil {
			return "", err
		}
		nonce := hex.EncodeToString(buf)

		ok, err := b.client.SetNX(ctx, b.key(action, nonce), 1, b.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("token: store binding: %w", err)
		}
		if ok {
			return nonce, nil
		}
	}

	return "", ErrBindingCollision
}

// Consume 校验并删除绑定值，返回绑定值此前是否存在.
func (b *RedisBinder) Consume(ctx context.Context, action, nonce string) (bool, error) {
	n, err := b.client.Del(ctx, b.key(action, nonce)).Result()
	if err != nil {
		return false, fmt.Errorf("token: consume binding: %w", err)
	}

	return n > 0, nil
}

func (b *RedisBinder) key(action, nonce string) string {
	return fmt.Sprintf("%s:%s:%s", b.keyPrefix, action, nonce)
}

// MemoryBinder 进程内绑定实现，测试与单机场景用.
type MemoryBinder struct {
	mu       sync.Mutex
	bindings map[string]struct{}
	secure   random.Source
}

// NewMemoryBinder 创建内存绑定服务.
func NewMemoryBinder() *MemoryBinder {
	return &MemoryBinder{
		bindings: make(map[string]struct{}),
		secure:   random.NewSecure(),
	}
}

// CreateBinding 为 action 产生一次性绑定值.
func (b *MemoryBinder) CreateBinding(_ context.Context, action string) (string, error) {
	buf := make([]byte, nonceBytes)
	if err := b.secure.Bytes(buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings[action+":"+nonce] = struct{}{}

	return nonce, nil
}

// Consume 校验并删除绑定值.
func (b *MemoryBinder) Consume(_ context.Context, action, nonce string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := action + ":" + nonce
	_, ok := b.bindings[key]
	delete(b.bindings, key)

	return ok, nil
}
