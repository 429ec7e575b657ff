package dispatchers

// LineWriter receives one rendered line at a time.
type LineWriter func(line string)

// PrintTree writes n and its subtree, one node per line:
//
//	Literal "calc"
//	├── Literal "add"
//	│   └── Number <a>
//	└── Literal "sub"
//
// Redirects are shown as "-> target" and not followed.
func (n *Node) PrintTree(write LineWriter) {
	write(n.describe())
	n.printChildren(write, "", map[*Node]bool{n: true})
}

func (n *Node) describe() string {
	if n.redirect != nil {
		return n.String() + " -> " + n.redirect.String()
	}
	return n.String()
}

func (n *Node) printChildren(write LineWriter, indent string, onPath map[*Node]bool) {
	children := n.Children()
	for i, child := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		if onPath[child] {
			write(indent + branch + child.describe() + " (cycle)")
			continue
		}
		write(indent + branch + child.describe())
		onPath[child] = true
		child.printChildren(write, indent+next, onPath)
		delete(onPath, child)
	}
}
