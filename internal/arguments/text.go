package arguments

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

const (
	quote  = '"'
	escape = '\\'
)

type lengthBounds struct {
	lo, hi *int
}

func (b lengthBounds) check(value string, charRead int) error {
	n := utf8.RuneCountInString(value)
	if (b.lo == nil || n >= *b.lo) && (b.hi == nil || n <= *b.hi) {
		return nil
	}
	var lo, hi string
	if b.lo != nil {
		lo = strconv.Itoa(*b.lo)
	}
	if b.hi != nil {
		hi = strconv.Itoa(*b.hi)
	}
	return usage.TextLengthOutOfRange(charRead, n, lo, hi)
}

// TextArg parses a single token.
type TextArg struct {
	lengthBounds
}

// Text returns a parser for one divider-delimited token.
func Text() *TextArg {
	return &TextArg{}
}

// AtMinLength rejects tokens shorter than n runes.
func (a *TextArg) AtMinLength(n int) *TextArg {
	a.lo = &n
	return a
}

// AtMaxLength rejects tokens longer than n runes.
func (a *TextArg) AtMaxLength(n int) *TextArg {
	a.hi = &n
	return a
}

func (a *TextArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	if err := a.check(token, len(token)); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: token, CharRead: len(token)}, nil
}

func (a *TextArg) TypeName() string { return "Text" }

// QuotedTextArg parses a token, or a double quoted string that may contain
// dividers. Inside quotes \" and \\ are the only escapes.
type QuotedTextArg struct {
	lengthBounds
	nonEmpty bool
}

// QuotedText returns a parser for a token or a quoted string.
func QuotedText() *QuotedTextArg {
	return &QuotedTextArg{}
}

// AtMinLength rejects values shorter than n runes.
func (a *QuotedTextArg) AtMinLength(n int) *QuotedTextArg {
	a.lo = &n
	return a
}

// AtMaxLength rejects values longer than n runes.
func (a *QuotedTextArg) AtMaxLength(n int) *QuotedTextArg {
	a.hi = &n
	return a
}

// NonEmpty rejects "".
func (a *QuotedTextArg) NonEmpty() *QuotedTextArg {
	a.nonEmpty = true
	return a
}

func (a *QuotedTextArg) Parse(text string) (dispatchers.ParseResult, error) {
	value, charRead, err := readQuoted(text)
	if err != nil {
		return dispatchers.ParseResult{}, err
	}
	if a.nonEmpty && value == "" {
		return dispatchers.ParseResult{}, usage.EmptyText(charRead)
	}
	if err := a.check(value, charRead); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: value, CharRead: charRead}, nil
}

func (a *QuotedTextArg) TypeName() string { return "QuotedText" }

// readQuoted returns the unquoted value and the bytes consumed. Text not
// starting with a quote is read as a plain token.
func readQuoted(text string) (string, int, error) {
	if !strings.HasPrefix(text, string(quote)) {
		token := dispatchers.GetElement(text)
		return token, len(token), nil
	}

	var b strings.Builder
	escaped := false
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			if c != quote && c != escape {
				return "", i + 1, usage.IllegalEscapesUsage(i + 1)
			}
			b.WriteByte(c)
			escaped = false
		case c == escape:
			escaped = true
		case c == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", len(text), usage.UnclosedQuotedString(len(text))
}

// GreedyTextArg consumes all remaining text.
type GreedyTextArg struct {
	lengthBounds
}

// GreedyText returns a parser taking the rest of the command.
func GreedyText() *GreedyTextArg {
	return &GreedyTextArg{}
}

// AtMinLength rejects text shorter than n runes.
func (a *GreedyTextArg) AtMinLength(n int) *GreedyTextArg {
	a.lo = &n
	return a
}

// AtMaxLength rejects text longer than n runes.
func (a *GreedyTextArg) AtMaxLength(n int) *GreedyTextArg {
	a.hi = &n
	return a
}

func (a *GreedyTextArg) Parse(text string) (dispatchers.ParseResult, error) {
	if err := a.check(text, len(text)); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: text, CharRead: len(text)}, nil
}

func (a *GreedyTextArg) TypeName() string { return "GreedyText" }
