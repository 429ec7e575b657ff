package actions

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// Help lists every runnable command.
func (a *Actions) Help(_ any, _ dispatchers.Context) error {
	_, _ = a.deps.Println(a.deps.Styler.Header("Commands:"))
	for _, line := range a.commandLines(a.deps.Roots()) {
		_, _ = a.deps.Println("  " + line)
	}
	_, _ = a.deps.Println()
	_, _ = a.deps.Println(a.deps.Styler.Muted("Type `help <command>` for the tree of one command."))
	return nil
}

// HelpCommand prints the tree of every root named by the "command" binding.
func (a *Actions) HelpCommand(_ any, ctx dispatchers.Context) error {
	name := ctx.String("command")

	var matched []*dispatchers.Node
	for _, root := range a.deps.Roots() {
		if root.Matches(name) {
			matched = append(matched, root)
		}
	}
	if len(matched) == 0 {
		return usage.UnknownRootArgument("", name).
			WithHints(dispatchers.FindSimilar(name, a.RootNames(), 3)...)
	}

	_, _ = a.deps.Println(a.deps.Styler.Header("Usage:"))
	for _, line := range a.commandLines(matched) {
		_, _ = a.deps.Println("  " + line)
	}
	_, _ = a.deps.Println()
	for _, root := range matched {
		root.PrintTree(a.printTreeLine)
	}
	return nil
}

// RootNames returns the distinct root spellings, sorted. It backs the
// completion of "help <command>".
func (a *Actions) RootNames() []string {
	var names []string
	for _, root := range a.deps.Roots() {
		for _, s := range root.Literals() {
			if !slices.Contains(names, s) {
				names = append(names, s)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Tree prints the whole command tree through the pager.
func (a *Actions) Tree(_ any, _ dispatchers.Context) error {
	var b strings.Builder
	for _, root := range a.deps.Roots() {
		root.PrintTree(func(line string) {
			b.WriteString(a.styleTreeLine(line))
			b.WriteByte('\n')
		})
	}
	a.deps.Pager(b.String())
	return nil
}

func (a *Actions) printTreeLine(line string) {
	_, _ = a.deps.Println(a.styleTreeLine(line))
}

// styleTreeLine colours the node description after the branch drawing.
func (a *Actions) styleTreeLine(line string) string {
	i := strings.IndexFunc(line, func(r rune) bool {
		return !strings.ContainsRune("│├└─ ", r)
	})
	if i < 0 {
		return line
	}
	branch, desc := line[:i], line[i:]
	if strings.HasPrefix(desc, "Literal") {
		return a.deps.Styler.Muted(branch) + a.deps.Styler.Literal(desc)
	}
	return a.deps.Styler.Muted(branch) + a.deps.Styler.Argument(desc)
}

// commandLines returns one line per path ending at a runnable node.
func (a *Actions) commandLines(roots []*dispatchers.Node) []string {
	var lines []string
	seen := make(map[*dispatchers.Node]bool)
	for _, root := range roots {
		if seen[root] {
			continue
		}
		seen[root] = true
		for _, line := range runnablePaths(root, "", map[*dispatchers.Node]bool{}) {
			if !slices.Contains(lines, line) {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

func runnablePaths(n *dispatchers.Node, prefix string, onPath map[*dispatchers.Node]bool) []string {
	path := n.Usage()
	if prefix != "" {
		path = prefix + " " + path
	}
	if target := n.Redirect(); target != nil {
		return []string{fmt.Sprintf("%s -> %s", path, target.Usage())}
	}
	if onPath[n] {
		return nil
	}
	onPath[n] = true
	defer delete(onPath, n)

	var out []string
	if n.HasCallback() {
		out = append(out, path)
	}
	for _, child := range n.Children() {
		out = append(out, runnablePaths(child, path, onPath)...)
	}
	return out
}

// ShowUsage returns an error handler that prints err followed by the
// commands available under node.
func (a *Actions) ShowUsage(node *dispatchers.Node) dispatchers.ErrorHandler {
	return func(_ any, err *usage.Error, _ dispatchers.Context) {
		_, _ = a.deps.Println(a.deps.Styler.Error(err.Error()))
		_, _ = a.deps.Println(a.deps.Styler.Header("Usage:"))
		for _, line := range a.commandLines([]*dispatchers.Node{node}) {
			_, _ = a.deps.Println("  " + line)
		}
	}
}

// Stats prints the metric counters of this session.
func (a *Actions) Stats(_ any, _ dispatchers.Context) error {
	if a.deps.Metrics == nil {
		_, _ = a.deps.Println(a.deps.Styler.Muted("Metrics are disabled"))
		return nil
	}
	snapshot, err := a.deps.Metrics()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	if a.deps.Session != nil {
		_, _ = a.deps.Printf("%s %s\n", a.deps.Styler.Header("Session"), a.deps.Session())
	}
	for _, name := range names {
		_, _ = a.deps.Printf("  %-50s %g\n", name, snapshot[name])
	}
	return nil
}
