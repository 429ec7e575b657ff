package dispatchers

// ParseResult is what a node's parser produced: the value to bind (nil for
// literals) and how many characters of the remaining text it consumed.
type ParseResult struct {
	Value    any
	CharRead int
}

// Parser converts the start of the remaining command text into a value.
//
// text never starts with the divider. On failure Parse returns a
// *usage.Error of a syntax kind whose CharRead tells how much of text was
// looked at; CharRead of a successful result must not exceed len(text).
type Parser interface {
	Parse(text string) (ParseResult, error)
}

// Suggester is implemented by parsers with a fixed set of candidate values,
// used when the node has no suggestion provider of its own.
type Suggester interface {
	Suggestions() []string
}

// TypeNamer is implemented by parsers that want a type name in the tree
// printer, e.g. "Integer <count>".
type TypeNamer interface {
	TypeName() string
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(text string) (ParseResult, error)

// Parse calls f(text).
func (f ParserFunc) Parse(text string) (ParseResult, error) {
	return f(text)
}
