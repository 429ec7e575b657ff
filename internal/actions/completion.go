package actions

import (
	"github.com/footprint-tools/cmdtree/internal/completions"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
)

// Completion prints the completion script for the "shell" binding. Without
// one it prints how to load a script in each supported shell.
func (a *Actions) Completion(_ any, ctx dispatchers.Context) error {
	bin := a.deps.Binary()

	if !ctx.Has("shell") {
		for _, shell := range completions.Shells {
			_, _ = a.deps.Printf("%s  %s\n",
				a.deps.Styler.Header(string(shell)),
				a.deps.Styler.Muted("# "+completions.RcFile(shell)))
			_, _ = a.deps.Printf("  %s\n", completions.SourceInstructions(shell, bin))
		}
		return nil
	}

	script, err := completions.Script(completions.Shell(ctx.String("shell")), bin)
	if err != nil {
		return err
	}
	_, _ = a.deps.Printf("%s", script)
	return nil
}
