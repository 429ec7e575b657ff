package arguments

import (
	"testing"

	"github.com/footprint-tools/cmdtree/internal/usage"
	"github.com/stretchr/testify/require"
)

func TestText_Parse(t *testing.T) {
	res, err := Text().Parse("hello world")
	require.NoError(t, err)
	require.Equal(t, "hello", res.Value)
	require.Equal(t, 5, res.CharRead)

	_, err = Text().AtMinLength(3).Parse("ab")
	requireKind(t, err, usage.KindTextLengthOutOfRange, 2)

	_, err = Text().AtMaxLength(3).Parse("abcd")
	requireKind(t, err, usage.KindTextLengthOutOfRange, 4)
	require.EqualError(t, err, "Text length 4 out of range [0, 3]")

	// Length counts runes, not bytes.
	res, err = Text().AtMaxLength(2).Parse("ñö")
	require.NoError(t, err)
	require.Equal(t, 4, res.CharRead)
}

func TestQuotedText_Parse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    string
		charRead int
		kind     usage.ErrorKind
		fails    bool
	}{
		{name: "bare token", input: "abc def", value: "abc", charRead: 3},
		{name: "quoted with divider", input: `"a b" rest`, value: "a b", charRead: 5},
		{name: "escaped quote", input: `"a\"b"`, value: `a"b`, charRead: 6},
		{name: "escaped backslash", input: `"a\\b"`, value: `a\b`, charRead: 6},
		{name: "empty quotes", input: `""`, value: "", charRead: 2},
		{name: "unclosed", input: `"abc`, kind: usage.KindUnclosedQuotedString, charRead: 4, fails: true},
		{name: "dangling escape", input: `"ab\`, kind: usage.KindUnclosedQuotedString, charRead: 4, fails: true},
		{name: "illegal escape", input: `"a\nb"`, kind: usage.KindIllegalEscapesUsage, charRead: 4, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := QuotedText().Parse(tt.input)
			if tt.fails {
				requireKind(t, err, tt.kind, tt.charRead)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.value, res.Value)
			require.Equal(t, tt.charRead, res.CharRead)
		})
	}
}

func TestQuotedText_NonEmpty(t *testing.T) {
	_, err := QuotedText().NonEmpty().Parse(`"" x`)
	requireKind(t, err, usage.KindEmptyText, 2)
	require.True(t, usage.Is(usage.KindEmptyText, usage.KindIllegalArgument))

	res, err := QuotedText().NonEmpty().AtMaxLength(5).Parse(`"a b"`)
	require.NoError(t, err)
	require.Equal(t, "a b", res.Value)
}

func TestGreedyText_Parse(t *testing.T) {
	res, err := GreedyText().Parse("take it all ")
	require.NoError(t, err)
	require.Equal(t, "take it all ", res.Value)
	require.Equal(t, 12, res.CharRead)

	_, err = GreedyText().AtMinLength(5).Parse("abc")
	requireKind(t, err, usage.KindTextLengthOutOfRange, 3)
}
