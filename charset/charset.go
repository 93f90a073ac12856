// Package charset 提供了随机生成所用字符集的构建与解析能力.
// 支持按语义开关（大小写、数字、排除集）组合字母表，也支持命名预设与自定义字面量.
package charset

import (
	"errors"
	"strings"
)

// 基础字母表.
const (
	Lower  = "abcdefghijklmnopqrstuvwxyz"
	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits = "0123456789"
	Hex    = "0123456789abcdef"
)

// 命名预设，由 strgen 按名字直接消费.
const (
	PresetAlnum   = "alnum"   // 大写 + 小写 + 数字
	PresetAlpha   = "alpha"   // 大写 + 小写
	PresetNumeric = "numeric" // 仅数字
	PresetHex     = "hex"     // 小写十六进制
)

// ErrEmptyCharset 排除过滤后字符集为空.
// 生成方必须以失败收场，绝不允许静默产出空字母表.
var ErrEmptyCharset = errors.New("charset: empty after exclusions")

var presets = map[string]string{
	PresetAlnum:   Upper + Lower + Digits,
	PresetAlpha:   Upper + Lower,
	PresetNumeric: Digits,
	PresetHex:     Hex,
}

// Build 按语义开关组合字母表：大小写二选一（该路径下不混用），
// digits 为真时附加数字 0-9，最后剔除 exclude 中出现的字符并保持剩余字符的相对顺序.
// 相同开关组合的输出是确定的，便于在固定随机种子下复现生成结果.
func Build(uppercase, digits bool, exclude string) (string, error) {
	base := Lower
	if uppercase {
		base = Upper
	}
	if digits {
		base += Digits
	}

	filtered := Exclude(base, exclude)
	if filtered == "" {
		return "", ErrEmptyCharset
	}

	return filtered, nil
}

// Exclude 从 cs 中剔除 exclude 内出现的字符，保持相对顺序.
func Exclude(cs, exclude string) string {
	if exclude == "" {
		return cs
	}

	var b strings.Builder
	b.Grow(len(cs))
	for _, r := range cs {
		if !strings.ContainsRune(exclude, r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Resolve 将名字或字面量解析为字符集：命中预设时返回预设字母表，
// 否则将入参视为自定义字面量原样直通.
// 字面量中的重复字符不做去重，重复会按比例加大该字符的抽中概率，属刻意保留的行为.
func Resolve(nameOrLiteral string) (string, error) {
	if cs, ok := presets[nameOrLiteral]; ok {
		return cs, nil
	}

	if nameOrLiteral == "" {
		return "", ErrEmptyCharset
	}

	return nameOrLiteral, nil
}
