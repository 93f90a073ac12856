// Package sequence 提供了按命名空间隔离的单调序列计数器.
// 计数正确性建立在存储层的原子 fetch-and-increment 原语之上：
// 任意数量的并发调用各自恰好获得一个不重复的序列值，核心自身不做任何协调.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultStart 新命名空间的默认起始值.
const DefaultStart int64 = 1000

// ErrStore 底层存储读写失败.
// 直接向调用方传播，核心不做重试，由调用方决定善后.
var ErrStore = errors.New("sequence: store operation failed")

// Store 序列存储必须提供的原子原语.
// Increment 返回 name 命名空间计数器的当前值并原子地加一；
// 键不存在时以 start 作为当前值.
// 实现必须保证并发调用下每个返回值恰好派发一次.
type Store interface {
	Increment(ctx context.Context, name string, start int64) (int64, error)
}

// Counter 面向业务的序列计数器.
type Counter struct {
	store  Store
	start  int64
	logger *slog.Logger
}

// Option Counter 的可选配置.
type Option func(*Counter)

// WithStart 设置新命名空间的起始值.
func WithStart(start int64) Option {
	return func(c *Counter) { c.start = start }
}

// WithLogger 设置日志记录器.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Counter) { c.logger = logger }
}

// NewCounter 创建序列计数器.
func NewCounter(store Store, opts ...Option) *Counter {
	c := &Counter{
		store:  store,
		start:  DefaultStart,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Next 返回 name 命名空间内的下一个序列值.
// 不同命名空间的序列彼此独立（如 "invoices" 与 "refunds"）.
func (c *Counter) Next(ctx context.Context, name string) (int64, error) {
	v, err := c.store.Increment(ctx, name, c.start)
	if err != nil {
		c.logger.ErrorContext(ctx, "sequence increment failed", "name", name, "error", err)

		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return v, nil
}

// SequentialID 取下一个序列值，左补零到 padding 位并拼接可选前缀，
// 生成形如 INV-00001000 的可读业务编号.
func (c *Counter) SequentialID(ctx context.Context, name, prefix string, padding int) (string, error) {
	v, err := c.Next(ctx, name)
	if err != nil {
		return "", err
	}

	if padding < 0 {
		padding = 0
	}

	return fmt.Sprintf("%s%0*d", prefix, padding, v), nil
}
