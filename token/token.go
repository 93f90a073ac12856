// Package token 提供了安全令牌的签发：
// 十六进制与字母数字两种格式、绑定动作上下文的一次性令牌，
// 以及带过期元数据的 magic token（魔法链接令牌）.
package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/wyfcoding/genkit/charset"
	"github.com/wyfcoding/genkit/datetime"
	"github.com/wyfcoding/genkit/random"
	"github.com/wyfcoding/genkit/security"
	"github.com/wyfcoding/genkit/strgen"
	"github.com/wyfcoding/genkit/utils"
)

// Format 令牌格式.
type Format string

const (
	// FormatAlnum 大小写字母加数字.
	FormatAlnum Format = "alnum"
	// FormatHex 小写十六进制.
	FormatHex Format = "hex"
)

const (
	// MinLength 令牌最短长度，低于该值的请求一律拒绝.
	MinLength = 8
	// DefaultMagicTokenBytes magic token 的默认随机字节数，十六进制输出为其两倍长度.
	DefaultMagicTokenBytes = 32

	// fallbackSeedLen 降级路径所用口令素材的长度.
	fallbackSeedLen = 32
)

var (
	// ErrLengthTooShort 令牌长度低于安全下限.
	ErrLengthTooShort = errors.New("token: length must be at least 8")
	// ErrUnknownFormat 不支持的令牌格式.
	ErrUnknownFormat = errors.New("token: unknown format")
	// ErrNoBinder 请求了绑定令牌但未配置 Binder.
	ErrNoBinder = errors.New("token: binder not configured")
	// ErrNegativeExpiry 过期时长为负.
	ErrNegativeExpiry = errors.New("token: expiry must not be negative")
)

// Binder 一次性动作绑定服务：为 action 产生一个不可预测、只此一次的绑定值.
// 绑定值混入令牌派生后，令牌便无法跨动作上下文重放.
type Binder interface {
	CreateBinding(ctx context.Context, action string) (string, error)
}

// Options 一次 Token 调用的完整配置.
type Options struct {
	Length     int    // 输出长度，>= MinLength
	BindingKey string // 非空时将令牌绑定到该动作上下文（仅 alnum 格式生效）
	Format     Format // 缺省为 FormatAlnum
}

// Record magic token 的签发结果.
// 每次调用新建，签发后不再修改；所有权移交调用方，由调用方负责持久化.
type Record struct {
	Token     string `gorm:"size:128;uniqueIndex;not null" json:"token"`
	Expires   string `gorm:"-"                             json:"expires"`    // UTC "YYYY-MM-DD HH:MM:SS"
	ExpiresAt int64  `gorm:"index;not null"                json:"expires_at"` // Unix 秒
	Context   string `gorm:"size:64;index"                 json:"context"`
}

// Hash 返回令牌的 sha256 摘要，便于调用方以摘要形式落库.
func (r *Record) Hash() string {
	return security.HashToken(r.Token)
}

// Issuer 令牌签发器.
// 除时钟与注入的协作方外不持有可变状态，可被多 goroutine 并发使用.
type Issuer struct {
	secret []byte
	binder Binder
	gen    *strgen.Generator
	secure random.Source
	logger *slog.Logger
	now    func() time.Time
}

// IssuerOption Issuer 的可选配置.
type IssuerOption func(*Issuer)

// WithBinder 配置一次性动作绑定服务，绑定令牌路径必需.
func WithBinder(b Binder) IssuerOption {
	return func(i *Issuer) { i.binder = b }
}

// WithLogger 设置日志记录器.
func WithLogger(logger *slog.Logger) IssuerOption {
	return func(i *Issuer) { i.logger = logger }
}

// WithClock 注入时钟，测试用.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// WithGenerator 注入字符串生成器，测试用.
func WithGenerator(gen *strgen.Generator) IssuerOption {
	return func(i *Issuer) { i.gen = gen }
}

// WithSecureSource 注入安全随机源，测试用.
func WithSecureSource(src random.Source) IssuerOption {
	return func(i *Issuer) { i.secure = src }
}

// NewIssuer 创建令牌签发器.
// secret 是进程级密钥，参与绑定令牌的哈希派生.
func NewIssuer(secret []byte, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		secret: secret,
		gen:    strgen.New(),
		secure: random.NewSecure(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Token 签发一枚长度为 opts.Length 的令牌.
// hex 格式走安全字节路径；alnum 格式无绑定键时直接抽取随机字母数字串，
// 带绑定键时经单向哈希与一次性绑定值混合.
func (i *Issuer) Token(ctx context.Context, opts Options) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}

	format := opts.Format
	if format == "" {
		format = FormatAlnum
	}

	switch format {
	case FormatHex:
		return i.hexToken(ctx, opts.Length)
	case FormatAlnum:
		if opts.BindingKey == "" {
			return i.gen.Generate(opts.Length, charset.PresetAlnum, true)
		}

		return i.boundToken(ctx, opts.Length, opts.BindingKey)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// MagicToken 签发一枚带过期元数据的一次性登录令牌.
// byteLen 为随机字节数，输出 Token 为其两倍长度的十六进制串；
// byteLen <= 0 时使用 DefaultMagicTokenBytes.
// scope 原样透传到 Record.Context，不做校验.
func (i *Issuer) MagicToken(ctx context.Context, expiresIn time.Duration, scope string, byteLen int) (*Record, error) {
	if expiresIn < 0 {
		return nil, ErrNegativeExpiry
	}
	if byteLen <= 0 {
		byteLen = DefaultMagicTokenBytes
	}

	tok, err := i.hexToken(ctx, byteLen*2)
	if err != nil {
		return nil, err
	}

	expiresAt := i.now().Add(expiresIn).UTC()
	i.logger.DebugContext(ctx, "magic token 已签发",
		slog.String("context", scope),
		slog.Int64("expires_at", expiresAt.Unix()))

	return &Record{
		Token:     tok,
		Expires:   datetime.FormatTime(expiresAt),
		ExpiresAt: expiresAt.Unix(),
		Context:   scope,
	}, nil
}

// hexToken 从安全源取 ceil(length/2) 字节并十六进制编码，截取到 length.
// 安全源不可用时降级为弱口令素材的链式 sha256 摘要截断——
// 这是降低了安全性的可用性兜底，绝非默认路径.
func (i *Issuer) hexToken(ctx context.Context, length int) (string, error) {
	return utils.ExecuteWithFallback(ctx, "token", "hex",
		func(context.Context) (string, error) {
			buf := make([]byte, (length+1)/2)
			if err := i.secure.Bytes(buf); err != nil {
				return "", err
			}

			return hex.EncodeToString(buf)[:length], nil
		},
		func(context.Context) (string, error) {
			return degradedHex(length), nil
		},
	)
}

// degradedHex 以弱口令为种子链式哈希出至少 length 位十六进制字符.
func degradedHex(length int) string {
	seed := security.GeneratePassword(fallbackSeedLen)

	var b strings.Builder
	for b.Len() < length {
		sum := sha256.Sum256([]byte(seed + strconv.Itoa(b.Len())))
		b.WriteString(hex.EncodeToString(sum[:]))
	}

	return b.String()[:length]
}

// boundToken 将随机基串、一次性绑定值、当前时间与进程级密钥经单向哈希混合，
// 令牌因此无法脱离签发时的动作上下文被重放.
func (i *Issuer) boundToken(ctx context.Context, length int, action string) (string, error) {
	if i.binder == nil {
		return "", ErrNoBinder
	}

	base, err := i.gen.Generate(length, charset.PresetAlnum, true)
	if err != nil {
		return "", err
	}

	nonce, err := i.binder.CreateBinding(ctx, action)
	if err != nil {
		return "", fmt.Errorf("token: create binding: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(base))
	h.Write([]byte(nonce))
	h.Write([]byte(strconv.FormatInt(i.now().UnixNano(), 10)))
	h.Write(i.secret)

	digest := hex.EncodeToString(h.Sum(nil))
	for len(digest) < length {
		sum := sha256.Sum256([]byte(digest))
		digest += hex.EncodeToString(sum[:])
	}

	return digest[:length], nil
}
