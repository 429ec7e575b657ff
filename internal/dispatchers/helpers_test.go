package dispatchers

import (
	"strconv"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// greedy consumes all remaining text.
var greedy = ParserFunc(func(text string) (ParseResult, error) {
	return ParseResult{Value: text, CharRead: len(text)}, nil
})

// word consumes one token.
var word = ParserFunc(func(text string) (ParseResult, error) {
	token := GetElement(text)
	return ParseResult{Value: token, CharRead: len(token)}, nil
})

// integer consumes one token holding an integer.
var integer = ParserFunc(func(text string) (ParseResult, error) {
	token := GetElement(text)
	n, err := strconv.Atoi(token)
	if err != nil {
		return ParseResult{}, usage.InvalidInteger(len(token))
	}
	return ParseResult{Value: n, CharRead: len(token)}, nil
})

type recorder struct {
	calls []string
	ctx   Context
}

func (r *recorder) callback(name string) Callback {
	return func(_ any, ctx Context) error {
		r.calls = append(r.calls, name)
		r.ctx = ctx
		return nil
	}
}

func deny(any, Context) bool  { return false }
func allow(any, Context) bool { return true }

func mustEntry(n *Node) EntryNode {
	e, err := n.Entry()
	if err != nil {
		panic(err)
	}
	return e
}

func asUsage(err error) *usage.Error {
	ue, _ := usage.As(err)
	return ue
}
