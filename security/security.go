// Package security 提供了口令生成、口令哈希与令牌摘要等安全辅助能力.
package security

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/wyfcoding/genkit/random"
)

// passwordCharset 口令字符集：大小写字母、数字与常见符号.
const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*-_"

// defaultPasswordLen 未指定长度时的口令长度.
const defaultPasswordLen = 16

// weak 包级低质量源：口令生成不走安全源，正因如此它才能充当安全源故障时的降级素材.
var weak = random.NewWeak()

// GeneratePassword 使用非密码学源生成 length 位随机口令.
// 熵质量低于安全源输出，仅适合作为降级素材或一次性临时口令，
// 不应直接用作高价值凭据.
func GeneratePassword(length int) string {
	if length < 1 {
		length = defaultPasswordLen
	}

	b := make([]byte, length)
	for i := range b {
		// 弱源始终可用，Uniform 仅在 n <= 0 时报错.
		idx, _ := weak.Uniform(len(passwordCharset))
		b[i] = passwordCharset[idx]
	}

	return string(b)
}

// HashPassword 生成给定明文口令的 bcrypt 哈希值.
// 采用默认计算强度 (DefaultCost)，在安全性和性能之间取得平衡.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPassword 验证明文口令是否与存储的 bcrypt 哈希匹配.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// HashToken 返回令牌的 sha256 十六进制摘要.
// 令牌落库时存摘要而非明文，泄库后令牌本身仍不可用.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
