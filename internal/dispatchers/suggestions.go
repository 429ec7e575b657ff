package dispatchers

import (
	"slices"
	"strings"
)

// Suggestion is a completion candidate: Text may replace whatever follows
// Read in the command.
type Suggestion struct {
	Read string
	Text string
}

// Command returns the full command the suggestion completes to.
func (s Suggestion) Command() string {
	return s.Read + s.Text
}

// Suggestions is the outcome of GenerateSuggestions.
type Suggestions struct {
	Items []Suggestion

	// CompleteHint lists the usages of the argument children reachable
	// after a complete command, e.g. "<count>|<name>".
	CompleteHint string
}

// Strings returns the suggested texts in order without duplicates.
func (s Suggestions) Strings() []string {
	var out []string
	for _, item := range s.Items {
		if !slices.Contains(out, item.Text) {
			out = append(out, item.Text)
		}
	}
	return out
}

// Commands returns the completed commands in order without duplicates.
func (s Suggestions) Commands() []string {
	var out []string
	for _, item := range s.Items {
		cmd := item.Command()
		if !slices.Contains(out, cmd) {
			out = append(out, cmd)
		}
	}
	return out
}

// Filter keeps the suggestions whose completed command starts with command
// and drops duplicates.
func (s Suggestions) Filter(command string) Suggestions {
	out := Suggestions{CompleteHint: s.CompleteHint}
	for _, item := range s.Items {
		if strings.HasPrefix(item.Command(), command) && !slices.Contains(out.Items, item) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// Len returns the number of suggestions.
func (s Suggestions) Len() int {
	return len(s.Items)
}

// extend appends other's items; a non-empty hint from a deeper node
// replaces the current one.
func (s *Suggestions) extend(other Suggestions) {
	s.Items = append(s.Items, other.Items...)
	if other.CompleteHint != "" {
		s.CompleteHint = other.CompleteHint
	}
}

// generateSuggestions mirrors execute but never fails, and fans out to every
// plausible child instead of stopping at the first match.
func (n *Node) generateSuggestions(ctx *commandContext) Suggestions {
	readAtStart := ctx.read()
	own := func() Suggestions {
		var out Suggestions
		for _, s := range n.suggestions(ctx) {
			out.Items = append(out.Items, Suggestion{Read: readAtStart, Text: s})
		}
		return out
	}

	if ctx.remaining() == "" {
		return own()
	}
	result, err := n.parse(ctx.remaining())
	if err != nil {
		return own()
	}

	successRead := ctx.cursor + result.CharRead
	next := RemoveDividerPrefix(ctx.remaining()[result.CharRead:])
	totalRead := len(ctx.command) - len(next)

	restore := ctx.readCommand(n, result, totalRead)
	defer restore()

	if !n.allows(ctx) {
		return Suggestions{}
	}
	// Without a trailing divider the user is still typing this node.
	if next == "" && successRead == totalRead {
		return own()
	}

	target := n
	if n.redirect != nil {
		target = n.redirect
	}

	var out Suggestions
	visit := func(child *Node) {
		_ = ctx.enterChild(child, func() error {
			out.extend(child.generateSuggestions(ctx))
			return nil
		})
	}

	matching := target.literalChildren.get(GetElement(next))
	for _, child := range matching {
		visit(child)
	}
	if len(matching) > 0 {
		return out
	}

	for _, child := range target.literalChildren.unique() {
		visit(child)
	}
	var usages []string
	for _, child := range target.argumentChildren {
		visit(child)
		if next == "" {
			usages = append(usages, child.Usage())
		}
	}
	if next == "" && len(usages) > 0 {
		out.CompleteHint = strings.Join(usages, "|")
	}
	return out
}
