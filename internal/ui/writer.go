// Package ui holds the console output writer.
//
// Long one-shot output (the command tree, history listings) goes through a
// pager when stdout is a terminal, in the same order git resolves one:
// explicit override, the "pager" config key, $PAGER, then less.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"golang.org/x/term"
)

// DefaultPager is used when neither config nor environment name one.
const DefaultPager = "less -FRSX"

// Writer implements domain.OutputWriter.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	pagerOverride string
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
	isTerminal    func(io.Writer) bool
	run           func(name string, args []string, content string) error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled makes Pager print directly. Interactive consoles use it.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithPagerOverride sets a pager command that wins over config and env.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) {
		w.pagerOverride = cmd
	}
}

// WithConfigGetter sets where the "pager" key is read from.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter replaces os.Getenv.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// withRunner replaces process execution; tests only.
func withRunner(isTerminal func(io.Writer) bool, run func(string, []string, string) error) WriterOption {
	return func(w *Writer) {
		w.isTerminal = isTerminal
		w.run = run
	}
}

// NewWriter creates a Writer on stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a Writer on out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		envGetter:  os.Getenv,
		isTerminal: fileIsTerminal,
	}
	w.run = w.execPager
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager shows content through the resolved pager, or prints it when paging
// is off, stdout is not a terminal, or the pager is "cat".
func (w *Writer) Pager(content string) {
	if w.pagerDisabled || !w.isTerminal(w.out) {
		fmt.Fprint(w.out, content)
		return
	}

	parts := strings.Fields(w.resolvePager())
	if len(parts) == 0 || parts[0] == "cat" {
		fmt.Fprint(w.out, content)
		return
	}

	if err := w.run(parts[0], parts[1:], content); err != nil {
		fmt.Fprint(w.out, content)
	}
}

func (w *Writer) resolvePager() string {
	if w.pagerOverride != "" {
		return w.pagerOverride
	}
	if w.configGetter != nil {
		if p, ok := w.configGetter("pager"); ok && p != "" {
			return p
		}
	}
	if w.envGetter != nil {
		if p := w.envGetter("PAGER"); p != "" {
			return p
		}
	}
	return DefaultPager
}

func (w *Writer) execPager(name string, args []string, content string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func fileIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var _ domain.OutputWriter = (*Writer)(nil)
