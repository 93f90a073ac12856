// Package strgen 提供了基于字符集的随机字符串生成器.
// 生成过程无共享可变状态，同一 Generator 可被多 goroutine 并发使用.
package strgen

import (
	"github.com/wyfcoding/genkit/charset"
	"github.com/wyfcoding/genkit/random"
)

// Generator 按字符集独立均匀抽样生成随机字符串.
type Generator struct {
	secure random.Source // 安全路径：crypto/rand，不可用时自动降级
	weak   random.Source // secure=false 时直连的低质量源
}

// New 创建默认生成器.
func New() *Generator {
	return &Generator{
		secure: random.New(),
		weak:   random.NewWeak(),
	}
}

// NewWithSources 注入自定义随机源，主要用于测试.
func NewWithSources(secure, weak random.Source) *Generator {
	return &Generator{secure: secure, weak: weak}
}

// Generate 从 nameOrLiteral 指定的字符集（预设名或自定义字面量）中
// 有放回地独立均匀抽取 length 个字符拼接成串，输出内出现重复字符属正常现象.
// secure=false 时直接使用低质量源，这是调用方主动选择的性能/质量权衡，不是错误路径.
func (g *Generator) Generate(length int, nameOrLiteral string, secure bool) (string, error) {
	cs, err := charset.Resolve(nameOrLiteral)
	if err != nil {
		return "", err
	}

	return g.FromCharset(length, cs, secure)
}

// FromCharset 跳过预设解析，直接从给定字面量字符集抽取.
func (g *Generator) FromCharset(length int, cs string, secure bool) (string, error) {
	if length < 1 {
		return "", random.ErrInvalidRange
	}
	if cs == "" {
		return "", charset.ErrEmptyCharset
	}

	src := g.secure
	if !secure {
		src = g.weak
	}

	chars := []rune(cs)
	out := make([]rune, length)
	for i := range out {
		idx, err := src.Uniform(len(chars))
		if err != nil {
			return "", err
		}
		out[i] = chars[idx]
	}

	return string(out), nil
}
