// Package idgen 提供了 UUID、随机十六进制 ID、前缀键拼装，
// 以及基于序列计数器的业务编号生成.
package idgen

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/wyfcoding/genkit/random"
	"github.com/wyfcoding/genkit/sequence"
)

// secure 包级安全源，供 RandomHex 使用.
var secure = random.NewSecure()

// UUID 返回标准 v4 UUID 字符串.
func UUID() string {
	return uuid.NewString()
}

// RandomHex 生成 length 位随机十六进制字符串（安全源），奇数长度同样支持.
func RandomHex(length int) (string, error) {
	if length < 1 {
		return "", random.ErrInvalidRange
	}

	buf := make([]byte, (length+1)/2)
	if err := secure.Bytes(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf)[:length], nil
}

// PrefixedKey 以冒号拼接前缀与各部件，生成缓存或存储键.
func PrefixedKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// 业务编号的序列命名空间与前缀.
const (
	orderSeq   = "orders"
	invoiceSeq = "invoices"
	couponSeq  = "coupons"

	numberPadding = 8
)

// Numberer 基于序列计数器签发带前缀的业务编号.
type Numberer struct {
	counter *sequence.Counter
}

// NewNumberer 创建业务编号签发器.
func NewNumberer(counter *sequence.Counter) *Numberer {
	return &Numberer{counter: counter}
}

// OrderNo 生成订单号，形如 ORD-00001000.
func (n *Numberer) OrderNo(ctx context.Context) (string, error) {
	return n.counter.SequentialID(ctx, orderSeq, "ORD-", numberPadding)
}

// InvoiceNo 生成发票号，形如 INV-00001000.
func (n *Numberer) InvoiceNo(ctx context.Context) (string, error) {
	return n.counter.SequentialID(ctx, invoiceSeq, "INV-", numberPadding)
}

// CouponNo 生成优惠券编号，形如 CPN-00001000.
func (n *Numberer) CouponNo(ctx context.Context) (string, error) {
	return n.counter.SequentialID(ctx, couponSeq, "CPN-", numberPadding)
}
