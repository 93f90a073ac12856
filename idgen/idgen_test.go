package idgen

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/genkit/random"
	"github.com/wyfcoding/genkit/sequence"
)

func TestUUID(t *testing.T) {
	id := UUID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	assert.NotEqual(t, id, UUID())
}

func TestRandomHex(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]+$`)

	t.Run("even and odd lengths", func(t *testing.T) {
		for _, length := range []int{1, 7, 8, 16, 33} {
			s, err := RandomHex(length)
			require.NoError(t, err)
			assert.Len(t, s, length)
			assert.Regexp(t, hexRe, s)
		}
	})

	t.Run("non-positive length rejected", func(t *testing.T) {
		_, err := RandomHex(0)
		assert.ErrorIs(t, err, random.ErrInvalidRange)
	})
}

func TestPrefixedKey(t *testing.T) {
	assert.Equal(t, "user:42:profile", PrefixedKey("user", "42", "profile"))
	assert.Equal(t, "session", PrefixedKey("session"))
	assert.Equal(t, "cache:k", PrefixedKey("cache", "k"))
}

func TestNumberer(t *testing.T) {
	ctx := context.Background()
	counter := sequence.NewCounter(sequence.NewMemoryStore())
	numberer := NewNumberer(counter)

	order, err := numberer.OrderNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-00001000", order)

	invoice, err := numberer.InvoiceNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-00001000", invoice)

	coupon, err := numberer.CouponNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CPN-00001000", coupon)

	// 各业务序列相互独立且单调.
	order, err = numberer.OrderNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-00001001", order)
}
