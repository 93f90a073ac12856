package code

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/genkit/charset"
	"github.com/wyfcoding/genkit/random"
)

func TestCodeLengthFormula(t *testing.T) {
	composer := New()

	cases := []struct {
		name string
		opts Options
	}{
		{"defaults", DefaultOptions()},
		{"multi segment with separator", Options{Length: 4, Segments: 4, Separator: "-", Uppercase: true, Numbers: true}},
		{"prefix and suffix", Options{Length: 6, Segments: 2, Separator: ".", Prefix: "SAVE-", Suffix: "-2026", Uppercase: true, Numbers: true}},
		{"single char segments", Options{Length: 1, Segments: 5, Separator: "--", Uppercase: false, Numbers: false}},
		{"no separator concatenation", Options{Length: 3, Segments: 3, Uppercase: false, Numbers: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := composer.Code(tc.opts)
			require.NoError(t, err)

			want := len(tc.opts.Prefix) +
				tc.opts.Segments*tc.opts.Length +
				(tc.opts.Segments-1)*len(tc.opts.Separator) +
				len(tc.opts.Suffix)
			assert.Len(t, got, want)
		})
	}
}

func TestCodeFormat(t *testing.T) {
	composer := New()

	t.Run("four segments joined by hyphen", func(t *testing.T) {
		got, err := composer.Code(Options{
			Length: 4, Segments: 4, Separator: "-", Uppercase: true, Numbers: true,
		})
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`), got)
	})

	t.Run("default options avoid ambiguous characters", func(t *testing.T) {
		got, err := composer.Code(DefaultOptions())
		require.NoError(t, err)
		require.Len(t, got, 4)
		for _, r := range got {
			assert.True(t, strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r),
				"character %q should have been excluded", r)
		}
	})

	t.Run("prefix and suffix are literal passthrough", func(t *testing.T) {
		got, err := composer.Code(Options{
			Length: 4, Segments: 1, Uppercase: true, Numbers: true,
			Prefix: "save_0O1I-", Suffix: "!",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "save_0O1I-"))
		assert.True(t, strings.HasSuffix(got, "!"))
	})
}

func TestCodeValidation(t *testing.T) {
	composer := New()

	t.Run("empty working charset", func(t *testing.T) {
		_, err := composer.Code(Options{
			Length: 4, Segments: 1,
			Uppercase: false, Numbers: false,
			Exclude: charset.Lower,
		})
		assert.ErrorIs(t, err, charset.ErrEmptyCharset)
	})

	t.Run("zero length", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Length = 0
		_, err := composer.Code(opts)
		assert.ErrorIs(t, err, random.ErrInvalidRange)
	})

	t.Run("zero segments", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Segments = 0
		_, err := composer.Code(opts)
		assert.ErrorIs(t, err, random.ErrInvalidRange)
	})
}
