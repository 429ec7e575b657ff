package dispatchers

import (
	"errors"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Builder methods return the node so calls can be chained. A misuse does
// not panic: it is recorded and reported by Err, Validate and Entry.

// Then attaches child. Redirected nodes cannot have children.
func (n *Node) Then(child *Node) *Node {
	switch {
	case child == nil:
		n.fail(usage.IllegalNodeOperation("cannot attach a nil child to %s", n))
	case n.redirect != nil:
		n.fail(usage.IllegalNodeOperation("redirected node %s is not allowed to add child nodes", n))
	case child.kind == kindLiteral:
		for _, s := range child.literals {
			n.literalChildren.add(s, child)
		}
	default:
		n.argumentChildren = append(n.argumentChildren, child)
	}
	return n
}

// Runs sets the callback invoked when the command ends at this node.
func (n *Node) Runs(cb Callback) *Node {
	n.callback = cb
	return n
}

// RunsSource is Runs for callbacks that only need the source.
func (n *Node) RunsSource(cb func(src any) error) *Node {
	if cb == nil {
		return n.Runs(nil)
	}
	return n.Runs(func(src any, _ Context) error { return cb(src) })
}

// Requires gates the node behind requirement. message, which may be nil,
// explains a rejection.
func (n *Node) Requires(requirement Requirement, message MessageFunc) *Node {
	n.requirement = requirement
	n.failureMessage = message
	return n
}

// RequiresSource is Requires for predicates that only need the source.
func (n *Node) RequiresSource(requirement func(src any) bool, reason string) *Node {
	var message MessageFunc
	if reason != "" {
		message = func(any, Context) string { return reason }
	}
	if requirement == nil {
		return n.Requires(nil, message)
	}
	return n.Requires(func(src any, _ Context) bool { return requirement(src) }, message)
}

// Redirects delegates child dispatch and, when n has no callback, callback
// resolution to target. Nodes with children cannot be redirected.
func (n *Node) Redirects(target *Node) *Node {
	switch {
	case target == nil:
		n.fail(usage.IllegalNodeOperation("cannot redirect %s to nil", n))
	case n.HasChildren():
		n.fail(usage.IllegalNodeOperation("node %s with children nodes is not allowed to be redirected", n))
	default:
		n.redirect = target
	}
	return n
}

// Suggests sets the completion provider. Literal nodes always suggest their
// own spellings and reject this call.
func (n *Node) Suggests(fn SuggestFunc) *Node {
	if n.kind == kindLiteral {
		n.fail(usage.IllegalNodeOperation("literal node %s does not support suggests", n))
		return n
	}
	n.suggester = fn
	return n
}

// OnError registers handler for errors of kind (or a more specific kind)
// raised by this node itself. With handled set the error is marked handled
// after the handler runs; it keeps propagating either way.
func (n *Node) OnError(kind usage.ErrorKind, handler ErrorHandler, handled bool) *Node {
	n.errorHandlers = n.addHandler(n.errorHandlers, kind, handler, handled)
	return n
}

// OnChildError registers handler for errors of kind (or a more specific
// kind) escaping a child while this node dispatches to it.
func (n *Node) OnChildError(kind usage.ErrorKind, handler ErrorHandler, handled bool) *Node {
	n.childErrorHandlers = n.addHandler(n.childErrorHandlers, kind, handler, handled)
	return n
}

func (n *Node) addHandler(handlers []errorHandler, kind usage.ErrorKind, handler ErrorHandler, handled bool) []errorHandler {
	if !kind.IsCommandKind() {
		n.fail(usage.IllegalNodeOperation("%s is not a command error kind", kind))
		return handlers
	}
	if handler == nil {
		n.fail(usage.IllegalNodeOperation("nil handler for %s", kind))
		return handlers
	}
	for i := range handlers {
		if handlers[i].kind == kind {
			handlers[i] = errorHandler{kind: kind, handler: handler, handled: handled}
			return handlers
		}
	}
	return append(handlers, errorHandler{kind: kind, handler: handler, handled: handled})
}

// Err returns the build errors recorded on n itself.
func (n *Node) Err() error {
	return errors.Join(n.errs...)
}

// Validate returns the build errors recorded anywhere in n's subtree,
// including the subtrees of redirect targets.
func (n *Node) Validate() error {
	var errs []error
	seen := make(map[*Node]bool)
	var walk func(*Node)
	walk = func(node *Node) {
		if seen[node] {
			return
		}
		seen[node] = true
		errs = append(errs, node.errs...)
		for _, child := range node.Children() {
			walk(child)
		}
		if node.redirect != nil {
			walk(node.redirect)
		}
	}
	walk(n)
	return errors.Join(errs...)
}
