package strgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/genkit/charset"
	"github.com/wyfcoding/genkit/random"
)

type zeroSource struct{}

func (zeroSource) Uniform(int) (int, error) { return 0, nil }
func (zeroSource) Bytes(p []byte) error {
	for i := range p {
		p[i] = 0
	}
	return nil
}

type brokenSource struct{}

func (brokenSource) Uniform(int) (int, error) { return 0, errors.New("broken") }
func (brokenSource) Bytes([]byte) error       { return errors.New("broken") }

func TestGenerate(t *testing.T) {
	gen := New()

	t.Run("length and preset membership", func(t *testing.T) {
		for _, length := range []int{1, 5, 16, 64} {
			s, err := gen.Generate(length, charset.PresetAlnum, true)
			require.NoError(t, err)
			assert.Len(t, s, length)

			for _, r := range s {
				assert.True(t, strings.ContainsRune(charset.Upper+charset.Lower+charset.Digits, r),
					"character %q outside charset", r)
			}
		}
	})

	t.Run("numeric preset yields digits only", func(t *testing.T) {
		s, err := gen.Generate(32, charset.PresetNumeric, true)
		require.NoError(t, err)
		for _, r := range s {
			assert.True(t, r >= '0' && r <= '9')
		}
	})

	t.Run("hex preset", func(t *testing.T) {
		s, err := gen.Generate(32, charset.PresetHex, true)
		require.NoError(t, err)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(charset.Hex, r))
		}
	})

	t.Run("literal custom charset", func(t *testing.T) {
		s, err := gen.Generate(40, "ab", true)
		require.NoError(t, err)
		for _, r := range s {
			assert.Contains(t, "ab", string(r))
		}
	})

	t.Run("insecure mode uses the weak source", func(t *testing.T) {
		s, err := gen.Generate(16, charset.PresetAlnum, false)
		require.NoError(t, err)
		assert.Len(t, s, 16)
	})

	t.Run("zero length rejected", func(t *testing.T) {
		_, err := gen.Generate(0, charset.PresetAlnum, true)
		assert.ErrorIs(t, err, random.ErrInvalidRange)
	})

	t.Run("empty charset rejected", func(t *testing.T) {
		_, err := gen.Generate(8, "", true)
		assert.ErrorIs(t, err, charset.ErrEmptyCharset)
	})
}

func TestFromCharset(t *testing.T) {
	t.Run("deterministic with injected source", func(t *testing.T) {
		gen := NewWithSources(zeroSource{}, zeroSource{})

		s, err := gen.FromCharset(4, "xyz", true)
		require.NoError(t, err)
		assert.Equal(t, "xxxx", s)
	})

	t.Run("source failure surfaces", func(t *testing.T) {
		gen := NewWithSources(brokenSource{}, zeroSource{})

		_, err := gen.FromCharset(4, "xyz", true)
		assert.Error(t, err)
	})

	t.Run("insecure mode routes to the weak source", func(t *testing.T) {
		gen := NewWithSources(brokenSource{}, zeroSource{})

		s, err := gen.FromCharset(4, "xyz", false)
		require.NoError(t, err)
		assert.Equal(t, "xxxx", s)
	})
}
