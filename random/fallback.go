package random

import (
	"context"

	"github.com/wyfcoding/genkit/utils"
)

// FallbackSource 把两个随机源组成主/备结构：
// 主源（通常为安全源）出错时记录日志与监控计数，并转由备源完成本次抽取.
// 入参校验在委派之前完成，ErrInvalidRange 永远不会触发降级.
type FallbackSource struct {
	primary  Source
	fallback Source
}

// New 返回默认的两级随机源：crypto/rand 为主，PCG 兜底.
func New() *FallbackSource {
	return NewFallback(NewSecure(), NewWeak())
}

// NewFallback 用指定的主/备源组装两级随机源，备源必须始终可用.
// 测试可注入一个恒定失败的主源来确定性地走通降级路径.
func NewFallback(primary, fallback Source) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback}
}

// Uniform 返回 [0, n) 内均匀分布的整数，主源失败时降级.
func (s *FallbackSource) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}

	return utils.ExecuteWithFallback(context.Background(), "random", "uniform",
		func(context.Context) (int, error) { return s.primary.Uniform(n) },
		func(context.Context) (int, error) { return s.fallback.Uniform(n) },
	)
}

// Bytes 将 p 填满随机字节，主源失败时降级.
func (s *FallbackSource) Bytes(p []byte) error {
	_, err := utils.ExecuteWithFallback(context.Background(), "random", "bytes",
		func(context.Context) ([]byte, error) {
			if err := s.primary.Bytes(p); err != nil {
				return nil, err
			}

			return p, nil
		},
		func(context.Context) ([]byte, error) {
			if err := s.fallback.Bytes(p); err != nil {
				return nil, err
			}

			return p, nil
		},
	)

	return err
}
