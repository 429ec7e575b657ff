package dispatchers

import (
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// EntryNode is the root of a dispatch. Only literal nodes can be entry
// nodes.
type EntryNode interface {
	// Execute parses command against the tree and runs the callback it
	// ends at. Command errors are *usage.Error values; errors returned by
	// callbacks are passed through unchanged.
	Execute(src any, command string) error

	// GenerateSuggestions returns completion candidates for a partially
	// typed command. It never fails.
	GenerateSuggestions(src any, command string) Suggestions

	// Root returns the node the entry dispatches from.
	Root() *Node
}

type entryNode struct {
	root *Node
}

// Entry returns n as an EntryNode. It fails for argument nodes and when any
// node in the tree carries a build error.
func (n *Node) Entry() (EntryNode, error) {
	if n.kind != kindLiteral {
		return nil, usage.IllegalNodeOperation("argument node %s cannot be an entry node", n)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return entryNode{root: n}, nil
}

// MustEntry is Entry for trees built at init time; it panics on error.
func (n *Node) MustEntry() EntryNode {
	e, err := n.Entry()
	if err != nil {
		panic(err)
	}
	return e
}

func (e entryNode) Root() *Node {
	return e.root
}

func (e entryNode) Execute(src any, command string) error {
	ctx := newCommandContext(src, command)
	err := ctx.enterChild(e.root, func() error {
		return e.root.execute(ctx)
	})
	if ue, ok := usage.As(err); ok && ue.Kind == usage.KindLiteralNotMatch {
		// The first token is not a command this root knows.
		rootErr := usage.UnknownRootArgument(ue.Parsed, ue.Failed)
		if ue.IsHandled() {
			rootErr.SetHandled()
		}
		return rootErr
	}
	return err
}

func (e entryNode) GenerateSuggestions(src any, command string) Suggestions {
	ctx := newCommandContext(src, command)
	var out Suggestions
	_ = ctx.enterChild(e.root, func() error {
		out = e.root.generateSuggestions(ctx)
		return nil
	})
	return out
}
