package dispatchers

import (
	"maps"
	"slices"
)

// frame is one entered node. result and cursor are set once the node has
// parsed its part of the command.
type frame struct {
	node   *Node
	result ParseResult
	cursor int
	read   bool
}

// commandContext is the live, mutable state of one Execute or
// GenerateSuggestions call. It is owned by that call and never handed out;
// callbacks see a Context snapshot instead.
type commandContext struct {
	source   any
	command  string
	cursor   int
	frames   []frame
	bindings map[string]any
}

func newCommandContext(source any, command string) *commandContext {
	return &commandContext{
		source:   source,
		command:  command,
		bindings: make(map[string]any),
	}
}

func (c *commandContext) read() string {
	return c.command[:c.cursor]
}

func (c *commandContext) remaining() string {
	return c.command[c.cursor:]
}

// enterChild pushes node for the duration of fn. The frame is popped on
// every exit path, including panics.
func (c *commandContext) enterChild(node *Node, fn func() error) error {
	c.frames = append(c.frames, frame{node: node, cursor: c.cursor})
	defer func() {
		c.frames = c.frames[:len(c.frames)-1]
	}()
	return fn()
}

// readCommand moves the cursor past what node consumed and binds the parsed
// value for argument nodes. The returned function restores the cursor, the
// previous binding and the top frame; callers defer it.
func (c *commandContext) readCommand(node *Node, result ParseResult, cursor int) (restore func()) {
	prevCursor := c.cursor
	c.cursor = cursor

	top := len(c.frames) - 1
	var prevFrame frame
	if top >= 0 {
		prevFrame = c.frames[top]
		c.frames[top] = frame{node: node, result: result, cursor: cursor, read: true}
	}

	name, bind := node.bindingName()
	prevValue, hadValue := c.bindings[name]
	if bind {
		c.bindings[name] = result.Value
	}

	return func() {
		c.cursor = prevCursor
		if top >= 0 && top < len(c.frames) {
			c.frames[top] = prevFrame
		}
		if !bind {
			return
		}
		if hadValue {
			c.bindings[name] = prevValue
		} else {
			delete(c.bindings, name)
		}
	}
}

// snapshot copies the state a callback may look at.
func (c *commandContext) snapshot() Context {
	nodes := make([]*Node, 0, len(c.frames))
	for _, f := range c.frames {
		nodes = append(nodes, f.node)
	}
	return Context{
		source:   c.source,
		command:  c.command,
		cursor:   c.cursor,
		nodes:    nodes,
		bindings: maps.Clone(c.bindings),
	}
}

// Context is a read-only view of the parse state handed to callbacks,
// requirements, suggestion providers and error handlers. Each invocation
// receives its own copy; mutating the dispatch through it is impossible.
type Context struct {
	source   any
	command  string
	cursor   int
	nodes    []*Node
	bindings map[string]any
}

// Source returns the caller supplied execution context.
func (c Context) Source() any { return c.source }

// Command returns the full command being dispatched.
func (c Context) Command() string { return c.command }

// Cursor returns how many characters of the command have been consumed.
func (c Context) Cursor() int { return c.cursor }

// Read returns the consumed command prefix.
func (c Context) Read() string { return c.command[:c.cursor] }

// Remaining returns the part of the command not consumed yet.
func (c Context) Remaining() string { return c.command[c.cursor:] }

// Nodes returns the entered nodes, root first.
func (c Context) Nodes() []*Node { return slices.Clone(c.nodes) }

// Path returns the usage of every entered node, root first.
func (c Context) Path() []string {
	path := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		path[i] = n.Usage()
	}
	return path
}

// Len returns the number of bound arguments.
func (c Context) Len() int { return len(c.bindings) }

// Has reports whether an argument named name was parsed.
func (c Context) Has(name string) bool {
	_, ok := c.bindings[name]
	return ok
}

// Get returns the value bound to name.
func (c Context) Get(name string) (any, bool) {
	v, ok := c.bindings[name]
	return v, ok
}

// Values returns a copy of all bindings.
func (c Context) Values() map[string]any { return maps.Clone(c.bindings) }

// String returns the string bound to name, or "" if absent or not a string.
func (c Context) String(name string) string {
	s, _ := c.bindings[name].(string)
	return s
}

// Int returns the integer bound to name, or 0.
func (c Context) Int(name string) int {
	switch v := c.bindings[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Float returns the number bound to name as a float64, or 0.
func (c Context) Float(name string) float64 {
	switch v := c.bindings[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Bool returns the boolean bound to name, or false.
func (c Context) Bool(name string) bool {
	b, _ := c.bindings[name].(bool)
	return b
}
