package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("uppercase with digits excluding ambiguous chars", func(t *testing.T) {
		cs, err := Build(true, true, "0O1I")
		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", cs)
		assert.Len(t, cs, 32)
	})

	t.Run("lowercase without digits", func(t *testing.T) {
		cs, err := Build(false, false, "")
		require.NoError(t, err)
		assert.Equal(t, Lower, cs)
	})

	t.Run("uppercase without digits", func(t *testing.T) {
		cs, err := Build(true, false, "")
		require.NoError(t, err)
		assert.Equal(t, Upper, cs)
	})

	t.Run("excluding everything fails", func(t *testing.T) {
		_, err := Build(false, false, Lower)
		assert.ErrorIs(t, err, ErrEmptyCharset)
	})

	t.Run("exclusion preserves relative order", func(t *testing.T) {
		cs, err := Build(false, true, "aceg02468")
		require.NoError(t, err)
		assert.Equal(t, "bdfhijklmnopqrstuvwxyz13579", cs)
	})
}

func TestExclude(t *testing.T) {
	assert.Equal(t, "bd", Exclude("abcd", "ac"))
	assert.Equal(t, "abcd", Exclude("abcd", ""))
	assert.Equal(t, "", Exclude("abcd", "dcba"))
}

func TestResolve(t *testing.T) {
	t.Run("presets", func(t *testing.T) {
		for name, want := range map[string]string{
			PresetAlnum:   Upper + Lower + Digits,
			PresetAlpha:   Upper + Lower,
			PresetNumeric: Digits,
			PresetHex:     Hex,
		} {
			cs, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, want, cs)
		}
	})

	t.Run("literal passthrough keeps duplicates", func(t *testing.T) {
		cs, err := Resolve("aab!")
		require.NoError(t, err)
		assert.Equal(t, "aab!", cs)
	})

	t.Run("empty literal fails", func(t *testing.T) {
		_, err := Resolve("")
		assert.ErrorIs(t, err, ErrEmptyCharset)
	})
}
