package arguments

import (
	"slices"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// BooleanArg parses "true" or "false", ignoring case.
type BooleanArg struct{}

// Boolean returns a boolean parser.
func Boolean() BooleanArg {
	return BooleanArg{}
}

func (BooleanArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	switch strings.ToLower(token) {
	case "true":
		return dispatchers.ParseResult{Value: true, CharRead: len(token)}, nil
	case "false":
		return dispatchers.ParseResult{Value: false, CharRead: len(token)}, nil
	}
	return dispatchers.ParseResult{}, usage.InvalidBoolean(len(token), token)
}

func (BooleanArg) Suggestions() []string { return []string{"true", "false"} }

func (BooleanArg) TypeName() string { return "Boolean" }

// EnumerationArg accepts one of a fixed set of tokens and binds the token.
// Unlike a literal it binds a value and can be completed.
type EnumerationArg struct {
	values []string
}

// Enumeration returns a parser accepting exactly one of values.
func Enumeration(values ...string) *EnumerationArg {
	return &EnumerationArg{values: slices.Clone(values)}
}

func (a *EnumerationArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	if !slices.Contains(a.values, token) {
		return dispatchers.ParseResult{}, usage.InvalidEnumeration(len(token), token)
	}
	return dispatchers.ParseResult{Value: token, CharRead: len(token)}, nil
}

func (a *EnumerationArg) Suggestions() []string { return slices.Clone(a.values) }

func (a *EnumerationArg) TypeName() string { return "Enumeration" }
