// Package code 提供了多段式业务编码（优惠码、订单码、兑换码等）的组合生成.
package code

import (
	"strings"

	"github.com/wyfcoding/genkit/charset"
	"github.com/wyfcoding/genkit/random"
	"github.com/wyfcoding/genkit/strgen"
)

// Options 一次 Code 调用的完整配置，构造后不再修改.
// 字段约束：Length >= 1，Segments >= 1.
type Options struct {
	Length    int    // 每段长度
	Segments  int    // 段数
	Separator string // 段间分隔符，空串表示直接拼接
	Uppercase bool   // 使用大写字母表（否则小写）
	Numbers   bool   // 附加数字 0-9
	Exclude   string // 从工作字符集中剔除的字符
	Prefix    string // 字面前缀，不经过字符集过滤
	Suffix    string // 字面后缀，不经过字符集过滤
}

// DefaultOptions 返回默认配置：单段 4 位、大写 + 数字、剔除易混淆字符 0/O/1/I.
func DefaultOptions() Options {
	return Options{
		Length:    4,
		Segments:  1,
		Uppercase: true,
		Numbers:   true,
		Exclude:   "0O1I",
	}
}

// Composer 多段编码组合器.
type Composer struct {
	gen *strgen.Generator
}

// New 创建使用默认随机源的组合器.
func New() *Composer {
	return &Composer{gen: strgen.New()}
}

// NewWithGenerator 注入字符串生成器，主要用于测试.
func NewWithGenerator(gen *strgen.Generator) *Composer {
	return &Composer{gen: gen}
}

// Code 按 opts 生成一条编码：prefix + seg1 + sep + ... + segN + suffix.
// 工作字符集由大小写/数字开关减去排除集得到，为空时返回 charset.ErrEmptyCharset；
// 每段内字符独立均匀抽取（有放回），段与段之间互不去重.
// 前后缀是不透明的字面文本，调用方可借此打上品牌标识（如 "SAVE"）.
func (c *Composer) Code(opts Options) (string, error) {
	if opts.Length < 1 || opts.Segments < 1 {
		return "", random.ErrInvalidRange
	}

	cs, err := charset.Build(opts.Uppercase, opts.Numbers, opts.Exclude)
	if err != nil {
		return "", err
	}

	segments := make([]string, opts.Segments)
	for i := range segments {
		seg, err := c.gen.FromCharset(opts.Length, cs, true)
		if err != nil {
			return "", err
		}
		segments[i] = seg
	}

	var b strings.Builder
	b.WriteString(opts.Prefix)
	b.WriteString(strings.Join(segments, opts.Separator))
	b.WriteString(opts.Suffix)

	return b.String(), nil
}
