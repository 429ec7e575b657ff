// Package console provides the interactive front-ends of cmdtree: a
// readline based line console and a full screen TUI. Both feed lines to an
// Executor and print what it reports.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/manager"
)

// Executor runs and completes command lines. *manager.Manager implements it.
type Executor interface {
	Execute(src any, line string) error
	Suggest(src any, line string) dispatchers.Suggestions
	Report(err error) string
}

var _ Executor = (*manager.Manager)(nil)

// IsExit reports whether line asks the console to stop.
func IsExit(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit":
		return true
	}
	return false
}

// runLine executes line and writes the report of an unhandled error to
// out. It returns the error Execute returned.
func runLine(exec Executor, src any, line string, out io.Writer) error {
	err := exec.Execute(src, line)
	if manager.ShouldReport(err) {
		fmt.Fprintln(out, exec.Report(err))
	}
	return err
}
