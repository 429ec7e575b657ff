package dispatchers

import (
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// execute dispatches the remaining command starting at n. ctx has already
// entered n.
func (n *Node) execute(ctx *commandContext) error {
	result, err := n.parse(ctx.remaining())
	if err != nil {
		ue, ok := usage.As(err)
		if !ok {
			return err
		}
		remaining := ctx.remaining()
		ue.SetParsed(ctx.read())
		ue.SetFailed(ctx.read() + remaining[:max(0, min(ue.CharRead, len(remaining)))])
		return n.raise(ue, ctx)
	}

	next := RemoveDividerPrefix(ctx.remaining()[result.CharRead:])
	totalRead := len(ctx.command) - len(next)

	restore := ctx.readCommand(n, result, totalRead)
	defer restore()

	if !n.allows(ctx) {
		var reason string
		if n.failureMessage != nil {
			reason = n.failureMessage(ctx.source, ctx.snapshot())
		}
		return n.raise(usage.RequirementNotMet(ctx.read(), ctx.read(), reason), ctx)
	}

	if next == "" {
		callback := n.callback
		if callback == nil && n.redirect != nil {
			callback = n.redirect.callback
		}
		if callback == nil {
			return n.raise(usage.UnknownCommand(ctx.read(), ctx.read()), ctx)
		}
		return callback(ctx.source, ctx.snapshot())
	}

	target := n
	if n.redirect != nil {
		target = n.redirect
	}
	if !target.HasChildren() {
		return n.raise(usage.UnknownArgument(ctx.read(), ctx.command), ctx)
	}

	accepted, err := target.executeChildren(ctx, next)
	if err != nil {
		if ue, ok := usage.As(err); ok {
			n.handle(ue, ctx, n.childErrorHandlers)
		}
		return err
	}
	if !accepted {
		return n.raise(usage.UnknownArgument(ctx.read(), ctx.command), ctx)
	}
	return nil
}

// executeChildren hands next to n's children. Literal children registered
// under the next token are tried in order until one succeeds; the last
// literal error is returned if all fail. Only when no literal accepted the
// token is the first argument child tried. accepted is false when no child
// could take the token at all.
func (n *Node) executeChildren(ctx *commandContext, next string) (accepted bool, err error) {
	var literalErr error
	for _, child := range n.literalChildren.get(GetElement(next)) {
		err := ctx.enterChild(child, func() error {
			return child.execute(ctx)
		})
		if err == nil {
			return true, nil
		}
		if _, ok := usage.As(err); !ok {
			return true, err
		}
		literalErr = err
	}
	if literalErr != nil {
		return true, literalErr
	}

	if len(n.argumentChildren) == 0 {
		return false, nil
	}
	child := n.argumentChildren[0]
	return true, ctx.enterChild(child, func() error {
		return child.execute(ctx)
	})
}

func (n *Node) allows(ctx *commandContext) bool {
	if n.requirement == nil {
		return true
	}
	return n.requirement(ctx.source, ctx.snapshot())
}

// raise offers err to n's own handlers and returns it.
func (n *Node) raise(err *usage.Error, ctx *commandContext) error {
	n.handle(err, ctx, n.errorHandlers)
	return err
}

// handle runs every handler whose kind err satisfies, in registration order.
func (n *Node) handle(err *usage.Error, ctx *commandContext, handlers []errorHandler) {
	for _, h := range handlers {
		if !err.Is(h.kind) {
			continue
		}
		h.handler(ctx.source, err, ctx.snapshot())
		if h.handled {
			err.SetHandled()
		}
	}
}
