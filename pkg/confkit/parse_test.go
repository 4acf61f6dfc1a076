package confkit_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// parseOne parses input and fails the test on error.
func parseOne(t *testing.T, input string, opts ...confkit.Option) *confkit.Store {
	t.Helper()
	store, err := confkit.Parse(strings.NewReader(input), opts...)
	require.NoError(t, err)
	return store
}

// TestParse_KindInference verifies kind and payload inference for
// single values.
func TestParse_KindInference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		key      string
		wantKind confkit.Kind
		want     any
	}{
		{"small int", "n=42", "n", confkit.KindInt, 42},
		{"negative int", "n=-7", "n", confkit.KindInt, -7},
		{"explicit plus", "n=+42", "n", confkit.KindInt, 42},
		{"zero", "n=0", "n", confkit.KindInt, 0},
		{"int32 max", "n=2147483647", "n", confkit.KindInt, 2147483647},
		{"int32 min", "n=-2147483648", "n", confkit.KindInt, -2147483648},
		{"beyond int32 max", "n=2147483648", "n", confkit.KindInt64, int64(2147483648)},
		{"beyond int32 min", "n=-2147483649", "n", confkit.KindInt64, int64(-2147483649)},
		{"large int64", "n=4294967296", "n", confkit.KindInt64, int64(4294967296)},
		{"negative int64", "n=-4294967296", "n", confkit.KindInt64, int64(-4294967296)},
		{"integral float form", "n=3.0", "n", confkit.KindInt, 3},
		{"integral exponent", "n=1e2", "n", confkit.KindInt, 100},
		{"integral hex float", "n=0x1p8", "n", confkit.KindInt, 256},
		{"fractional", "f=0.5", "f", confkit.KindFloat64, 0.5},
		{"negative fractional", "f=-3.25", "f", confkit.KindFloat64, -3.25},
		{"fractional exponent", "f=2.5e-3", "f", confkit.KindFloat64, 0.0025},
		{"surrounding whitespace", "n=\t 42 \t", "n", confkit.KindInt, 42},
		{"plain string", "s=hello", "s", confkit.KindString, "hello"},
		{"string with spaces", "s=hello world", "s", confkit.KindString, "hello world"},
		{"trailing garbage", "s=12abc", "s", confkit.KindString, "12abc"},
		{"two numbers", "s=1 2", "s", confkit.KindString, "1 2"},
		{"unicode string", "s=héllo", "s", confkit.KindString, "héllo"},
		{"empty value", "k=", "k", confkit.KindInt, 0},
		{"whitespace value", "k= \t ", "k", confkit.KindInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := parseOne(t, tt.input)
			require.Equal(t, 1, store.Len())

			e, ok := store.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.want, e.Value())
		})
	}
}

// TestParse_IntegralBoundary verifies the int32 magnitude split in
// both directions around the boundary.
func TestParse_IntegralBoundary(t *testing.T) {
	store := parseOne(t, strings.Join([]string{
		"at_max=2147483647",
		"over_max=2147483648",
		"at_min=-2147483648",
		"under_min=-2147483649",
	}, "\n"))

	atMax, _ := store.Lookup("at_max")
	assert.Equal(t, confkit.KindInt, atMax.Kind)

	overMax, _ := store.Lookup("over_max")
	assert.Equal(t, confkit.KindInt64, overMax.Kind)

	atMin, _ := store.Lookup("at_min")
	assert.Equal(t, confkit.KindInt, atMin.Kind)

	underMin, _ := store.Lookup("under_min")
	assert.Equal(t, confkit.KindInt64, underMin.Kind)
}

// TestParse_NonFinite verifies NaN and infinity spellings become
// KindFloat64, never integral kinds.
func TestParse_NonFinite(t *testing.T) {
	store := parseOne(t, "a=nan\nb=inf\nc=-inf\n")

	a, ok := store.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, confkit.KindFloat64, a.Kind)
	assert.True(t, math.IsNaN(store.Float64("a", 0)))

	assert.True(t, math.IsInf(store.Float64("b", 0), 1))
	assert.True(t, math.IsInf(store.Float64("c", 0), -1))
}

// TestParse_HugeIntegral verifies integral values at the edge of
// float64 precision stay out of the integer kinds once they reach
// 2^63.
func TestParse_HugeIntegral(t *testing.T) {
	store := parseOne(t, "n=9223372036854775807\nm=1e300\n")

	n, ok := store.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, confkit.KindFloat64, n.Kind)

	m, ok := store.Lookup("m")
	require.True(t, ok)
	assert.Equal(t, confkit.KindFloat64, m.Kind)
}

// TestParse_StringNormalization verifies leading '='/whitespace
// stripping and trailing whitespace trimming on string values.
func TestParse_StringNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{"double equals", "n==5", "n", "5"},
		{"equals then space", "s== hello", "s", "hello"},
		{"interleaved equals and spaces", "s== = =x", "s", "x"},
		{"inner equals kept", "url=http://host/?a=b&c=d", "url", "http://host/?a=b&c=d"},
		{"trailing whitespace trimmed", "s=abc \t ", "s", "abc"},
		{"interior whitespace kept", "s=a  b", "s", "a  b"},
		{"hash inside value", "s=v # note", "s", "v # note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := parseOne(t, tt.input)
			got := store.String(tt.key, "<default>")
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestParse_ValueTruncation verifies the 256-byte string cap and the
// WithMaxValueLen override.
func TestParse_ValueTruncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	store := parseOne(t, "s="+long)

	got := store.String("s", "")
	assert.Len(t, got, confkit.DefaultMaxValueLen)
	assert.Equal(t, strings.Repeat("x", 256), got)

	small := parseOne(t, "s="+long, confkit.WithMaxValueLen(10))
	assert.Equal(t, strings.Repeat("x", 10), small.String("s", ""))

	// Non-positive override keeps the default.
	ignored := parseOne(t, "s="+long, confkit.WithMaxValueLen(0))
	assert.Len(t, ignored.String("s", ""), confkit.DefaultMaxValueLen)
}

// TestParse_TruncationNeverEndsInWhitespace verifies the cap re-trims
// whitespace it exposes.
func TestParse_TruncationNeverEndsInWhitespace(t *testing.T) {
	// 255 bytes of text, then a space, then more text: the cap falls
	// on the space.
	value := strings.Repeat("a", 255) + " " + strings.Repeat("b", 60)
	store := parseOne(t, "s="+value)

	got := store.String("s", "")
	assert.Equal(t, strings.Repeat("a", 255), got)
}

// TestParse_SkippedLines verifies comments, blank lines, missing
// separators, and empty keys produce no entries.
func TestParse_SkippedLines(t *testing.T) {
	input := strings.Join([]string{
		"# full line comment",
		"",
		"   ",
		"no separator here",
		"  =value with empty key",
		"====",
		"port=8080",
		"# another=comment",
	}, "\n")

	store := parseOne(t, input)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 8080, store.Int("port", 0))
}

// TestParse_CommentFirstByteOnly verifies '#' only comments a line
// from column one.
func TestParse_CommentFirstByteOnly(t *testing.T) {
	store := parseOne(t, " #x=1\n#y=2\n")

	// " #x=1" is not a comment; its key is "#x".
	require.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Int("#x", 0))
	assert.False(t, store.Has("y"))
	assert.False(t, store.Has("#y"))
}

// TestParse_KeyTrimming verifies keys are trimmed of surrounding
// whitespace and matched exactly afterward.
func TestParse_KeyTrimming(t *testing.T) {
	store := parseOne(t, "  port\t = 8080\n")

	assert.True(t, store.Has("port"))
	assert.False(t, store.Has(" port"))
	assert.Equal(t, 8080, store.Int("port", 0))
}

// TestParse_CRLF verifies carriage returns from Windows line endings
// never leak into keys or values.
func TestParse_CRLF(t *testing.T) {
	store := parseOne(t, "a=1\r\nb=hello\r\n")

	assert.Equal(t, 1, store.Int("a", 0))
	assert.Equal(t, "hello", store.String("b", ""))
}

// TestParse_DuplicateKeys verifies all duplicates are stored and the
// first occurrence wins lookups.
func TestParse_DuplicateKeys(t *testing.T) {
	store := parseOne(t, "k=1\nk=2\nk=3\n")

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 1, store.Int("k", 0))

	entries := store.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Value())
	assert.Equal(t, 2, entries[1].Value())
	assert.Equal(t, 3, entries[2].Value())
}

// TestParse_EmptyInput verifies an empty reader yields an empty store.
func TestParse_EmptyInput(t *testing.T) {
	store := parseOne(t, "")

	assert.Equal(t, 0, store.Len())
	assert.Nil(t, store.Entries())
	assert.Equal(t, "", store.Path())
}

// TestParse_NoTrailingNewline verifies the last line parses without a
// terminator.
func TestParse_NoTrailingNewline(t *testing.T) {
	store := parseOne(t, "a=1\nb=2")

	assert.Equal(t, 1, store.Int("a", 0))
	assert.Equal(t, 2, store.Int("b", 0))
}
