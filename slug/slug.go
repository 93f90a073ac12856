// Package slug 提供了 URL slug 的规范化与唯一性探测生成.
// 唯一性判断由外部内容存储以存在性谓词的形式提供，本包不关心存储引擎.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/wyfcoding/genkit/strgen"
)

// ExistsFunc 候选 slug 的存在性谓词（文章路径、分类名、用户名等），由内容存储方实现.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

const (
	defaultSuffixLen   = 4
	defaultMaxAttempts = 10
	randomRootLen      = 8

	// suffixCharset 后缀字符集：小写字母加数字，保持 URL 友好.
	suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrExhausted 尝试次数耗尽仍未探测到空闲 slug.
var ErrExhausted = errors.New("slug: attempts exhausted without a free candidate")

// Slugify 将任意文本规范化为 slug：
// 小写化，连续的非字母数字字符折叠为单个连字符，去除首尾连字符.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := true // 抑制首部连字符
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Generator slug 生成器.
type Generator struct {
	gen         *strgen.Generator
	suffixLen   int
	maxAttempts int
}

// GeneratorOption Generator 的可选配置.
type GeneratorOption func(*Generator)

// WithSuffixLen 设置冲突后缀长度.
func WithSuffixLen(n int) GeneratorOption {
	return func(g *Generator) { g.suffixLen = n }
}

// WithMaxAttempts 设置探测次数上限.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) { g.maxAttempts = n }
}

// New 创建 slug 生成器.
func New(opts ...GeneratorOption) *Generator {
	g := &Generator{
		gen:         strgen.New(),
		suffixLen:   defaultSuffixLen,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Unique 返回一个未被占用的 slug：先探测规范化后的 base，
// 被占用则追加随机后缀继续探测，直至成功或尝试耗尽.
// base 规范化后为空时改用纯随机根.
func (g *Generator) Unique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	root := Slugify(base)
	if root == "" {
		r, err := g.gen.FromCharset(randomRootLen, suffixCharset, true)
		if err != nil {
			return "", err
		}
		root = r
	}

	candidate := root
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if attempt > 0 {
			suffix, err := g.gen.FromCharset(g.suffixLen, suffixCharset, true)
			if err != nil {
				return "", err
			}
			candidate = root + "-" + suffix
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug: existence probe: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrExhausted
}
