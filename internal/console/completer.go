package console

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Completer adapts Executor.Suggest to readline's AutoCompleter.
type Completer struct {
	exec Executor
	src  any
	out  io.Writer // receives the argument hint when nothing can be completed
}

func NewCompleter(exec Executor, src any, out io.Writer) *Completer {
	return &Completer{exec: exec, src: src, out: out}
}

// Do returns the suffixes completing the word under the cursor and the
// length of that word in runes. A single candidate also gets a trailing
// divider.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	suggestions := c.exec.Suggest(c.src, text)

	partial := text
	if i := strings.LastIndex(text, " "); i >= 0 {
		partial = text[i+1:]
	}

	var suffixes []string
	for _, s := range suggestions.Items {
		if !strings.HasPrefix(s.Command(), text) {
			continue
		}
		suffix := s.Command()[len(text):]
		if suffix != "" && !slices.Contains(suffixes, suffix) {
			suffixes = append(suffixes, suffix)
		}
	}

	if len(suffixes) == 0 {
		if suggestions.CompleteHint != "" && c.out != nil {
			fmt.Fprintf(c.out, "\n%s\n", suggestions.CompleteHint)
		}
		return nil, 0
	}

	slices.Sort(suffixes)
	if len(suffixes) == 1 {
		suffixes[0] += " "
	}

	out := make([][]rune, len(suffixes))
	for i, s := range suffixes {
		out[i] = []rune(s)
	}
	return out, len([]rune(partial))
}
