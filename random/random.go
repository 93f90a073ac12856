// Package random 提供了 [0, n) 区间内均匀随机数的抽取能力.
// 首选密码学安全源（crypto/rand + 64 位拒绝采样，无取模偏置）；
// 安全源不可用时降级到非密码学的 PCG 兜底源.
// 兜底仅为可用性兜底，质量较低但同样保证 [0, n) 上的均匀分布，绝非默认路径.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	randv2 "math/rand/v2"
	"sync"
	"time"
)

var (
	// ErrInvalidRange 请求了非正的区间或长度，属编程错误，不做任何恢复.
	ErrInvalidRange = errors.New("random: range must be positive")
	// ErrSourceUnavailable 安全随机源不可用（操作系统熵源故障等硬性失败），触发降级.
	ErrSourceUnavailable = errors.New("random: secure source unavailable")
)

// Source 定义随机源接口.
// Uniform 返回 [0, n) 内均匀分布的整数；Bytes 将 p 填满随机字节.
// 实现必须可被多 goroutine 并发调用.
type Source interface {
	Uniform(n int) (int, error)
	Bytes(p []byte) error
}

// secureSource 基于 crypto/rand 的密码学安全源.
type secureSource struct{}

// NewSecure 创建密码学安全随机源.
// 该源在平台熵源故障时返回 ErrSourceUnavailable，不自行降级.
func NewSecure() Source {
	return secureSource{}
}

// Bytes 从平台安全熵源读取随机字节.
func (secureSource) Bytes(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return nil
}

// Uniform 使用 64 位拒绝采样保证 [0, n) 上的严格均匀：
// 只接受落在 n 最大整倍数区间内的读数，越界读数丢弃后重读.
// 直接对单字节取模在 n 不整除 256 时会引入偏置，此处刻意避开.
func (s secureSource) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}

	un := uint64(n)
	// bound 是不超过 MaxUint64 的 n 的最大整倍数，[0, bound) 内取模无偏.
	bound := math.MaxUint64 / un * un

	var buf [8]byte
	for {
		if err := s.Bytes(buf[:]); err != nil {
			return 0, err
		}

		v := binary.BigEndian.Uint64(buf[:])
		if v >= bound {
			continue
		}

		return int(v % un), nil
	}
}

// weakSource 基于 math/rand/v2 PCG 的非密码学源.
// 种子优先取自 crypto/rand，熵源不可用时退化为时间戳（此时本源仍然可用）.
type weakSource struct {
	mu  sync.Mutex
	rng *randv2.Rand
}

// NewWeak 创建始终可用的低质量随机源.
func NewWeak() Source {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}

	return &weakSource{
		rng: randv2.New(randv2.NewPCG(binary.LittleEndian.Uint64(seed[:]), 0)),
	}
}

// Uniform 返回 [0, n) 内均匀分布的整数；IntN 自身即无偏.
func (s *weakSource) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n), nil
}

// Bytes 用 PCG 输出填充 p.
func (s *weakSource) Bytes(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range p {
		p[i] = byte(s.rng.UintN(256))
	}

	return nil
}
