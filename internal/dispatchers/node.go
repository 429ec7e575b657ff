package dispatchers

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Callback runs when the command ends at a node. A non-nil error is returned
// to the caller of Execute.
type Callback func(src any, ctx Context) error

// Requirement decides whether src may enter a node.
type Requirement func(src any, ctx Context) bool

// MessageFunc produces the reason attached to RequirementNotMet.
type MessageFunc func(src any, ctx Context) string

// SuggestFunc produces completion candidates for a node.
type SuggestFunc func(src any, ctx Context) []string

// ErrorHandler observes a command error passing through a node.
type ErrorHandler func(src any, err *usage.Error, ctx Context)

type nodeKind int

const (
	kindLiteral nodeKind = iota
	kindArgument
)

type errorHandler struct {
	kind    usage.ErrorKind
	handler ErrorHandler
	handled bool
}

// literalIndex maps a spelling to the literal children accepting it, in
// registration order. Several children may share a spelling.
type literalIndex struct {
	spellings []string
	nodes     map[string][]*Node
}

func (idx *literalIndex) add(spelling string, n *Node) {
	if idx.nodes == nil {
		idx.nodes = make(map[string][]*Node)
	}
	if _, ok := idx.nodes[spelling]; !ok {
		idx.spellings = append(idx.spellings, spelling)
	}
	idx.nodes[spelling] = append(idx.nodes[spelling], n)
}

func (idx *literalIndex) get(spelling string) []*Node {
	return idx.nodes[spelling]
}

// unique returns every literal child once, in the order first registered.
func (idx *literalIndex) unique() []*Node {
	var out []*Node
	for _, s := range idx.spellings {
		for _, n := range idx.nodes[s] {
			if !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func (idx *literalIndex) empty() bool {
	return len(idx.spellings) == 0
}

// Node is a unit of a command tree: either a literal matching fixed
// keywords or an argument converting a token into a value.
//
// Nodes are built with the builder methods and are then read-only. Builder
// methods are not safe for concurrent use and must not be called once any
// dispatch on the tree has started; Execute and GenerateSuggestions on a
// finished tree may run concurrently.
type Node struct {
	kind nodeKind

	// literal
	literals []string

	// argument
	name   string
	parser Parser

	literalChildren  literalIndex
	argumentChildren []*Node

	callback       Callback
	requirement    Requirement
	failureMessage MessageFunc
	suggester      SuggestFunc

	errorHandlers      []errorHandler
	childErrorHandlers []errorHandler

	redirect *Node

	errs []error
}

// Literal creates a node matching any of the given spellings exactly.
// Spellings must be non-empty and must not contain the divider; a violation
// is recorded as a build error, see Err.
func Literal(spellings ...string) *Node {
	n := &Node{kind: kindLiteral}
	if len(spellings) == 0 {
		n.fail(usage.IllegalNodeOperation("literal node needs at least one spelling"))
	}
	for _, s := range spellings {
		switch {
		case s == "":
			n.fail(usage.IllegalNodeOperation("literal spelling must not be empty"))
		case strings.Contains(s, Divider):
			n.fail(usage.IllegalNodeOperation("divider %q cannot be inside literal %q", Divider, s))
		case !slices.Contains(n.literals, s):
			n.literals = append(n.literals, s)
		}
	}
	return n
}

// Argument creates a node that consumes text with parser and binds the
// result under name.
func Argument(name string, parser Parser) *Node {
	n := &Node{kind: kindArgument, name: name, parser: parser}
	if parser == nil {
		n.fail(usage.IllegalNodeOperation("argument %q has no parser", name))
	}
	return n
}

func (n *Node) fail(err error) {
	n.errs = append(n.errs, err)
}

// IsLiteral reports whether n is a literal node.
func (n *Node) IsLiteral() bool { return n.kind == kindLiteral }

// Literals returns the spellings of a literal node, nil for arguments.
func (n *Node) Literals() []string { return slices.Clone(n.literals) }

// Name returns the binding name of an argument node, "" for literals.
func (n *Node) Name() string { return n.name }

// Matches reports whether token is one of the literal's spellings.
func (n *Node) Matches(token string) bool {
	return n.kind == kindLiteral && slices.Contains(n.literals, token)
}

// Redirect returns the redirect target, if any.
func (n *Node) Redirect() *Node { return n.redirect }

// HasCallback reports whether the node runs something when the command ends there.
func (n *Node) HasCallback() bool { return n.callback != nil }

// HasChildren reports whether any literal or argument child is attached.
func (n *Node) HasChildren() bool {
	return !n.literalChildren.empty() || len(n.argumentChildren) > 0
}

// Children returns the literal children followed by the argument children,
// each once, in registration order.
func (n *Node) Children() []*Node {
	children := n.literalChildren.unique()
	for _, c := range n.argumentChildren {
		if !slices.Contains(children, c) {
			children = append(children, c)
		}
	}
	return children
}

// Usage returns "a|b" for a literal and "<name>" for an argument.
func (n *Node) Usage() string {
	if n.kind == kindLiteral {
		spellings := slices.Clone(n.literals)
		slices.Sort(spellings)
		return strings.Join(spellings, "|")
	}
	return "<" + n.name + ">"
}

func (n *Node) String() string {
	if n.kind == kindLiteral {
		if len(n.literals) == 1 {
			return "Literal " + strconv.Quote(n.literals[0])
		}
		return "Literal {" + strings.Join(n.literals, ", ") + "}"
	}
	typeName := "Argument"
	if tn, ok := n.parser.(TypeNamer); ok {
		typeName = tn.TypeName()
	}
	return fmt.Sprintf("%s <%s>", typeName, n.name)
}

func (n *Node) bindingName() (string, bool) {
	return n.name, n.kind == kindArgument
}

// parse runs the node's own parse rule on the remaining text.
func (n *Node) parse(text string) (ParseResult, error) {
	if n.kind == kindArgument {
		result, err := n.parser.Parse(text)
		if err != nil {
			return ParseResult{}, err
		}
		result.CharRead = max(0, min(result.CharRead, len(text)))
		return result, nil
	}
	token := GetElement(text)
	if slices.Contains(n.literals, token) {
		return ParseResult{CharRead: len(token)}, nil
	}
	return ParseResult{}, usage.LiteralNotMatch(len(token))
}

// suggestions returns the node's own completion candidates.
func (n *Node) suggestions(ctx *commandContext) []string {
	if n.kind == kindLiteral {
		return slices.Clone(n.literals)
	}
	if n.suggester != nil {
		return n.suggester(ctx.source, ctx.snapshot())
	}
	if s, ok := n.parser.(Suggester); ok {
		return s.Suggestions()
	}
	return nil
}
