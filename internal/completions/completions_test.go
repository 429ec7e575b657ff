package completions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/arguments"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
)

type treeSuggester struct {
	roots []*dispatchers.Node
}

func (s treeSuggester) Suggest(src any, line string) dispatchers.Suggestions {
	var out dispatchers.Suggestions
	for _, root := range s.roots {
		out.Items = append(out.Items, root.MustEntry().GenerateSuggestions(src, line).Items...)
	}
	return out.Filter(line)
}

func suggester() treeSuggester {
	noop := func(any, dispatchers.Context) error { return nil }
	return treeSuggester{roots: []*dispatchers.Node{
		dispatchers.Literal("config").
			Then(dispatchers.Literal("get").Then(
				dispatchers.Argument("key", arguments.Enumeration("color", "prompt")).Runs(noop))).
			Then(dispatchers.Literal("list").Runs(noop)),
		dispatchers.Literal("calc").Runs(noop),
	}}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", []string{"config", "calc"}},
		{"c", []string{"config", "calc"}},
		{"con", []string{"config"}},
		{"config ", []string{"get", "list"}},
		{"config l", []string{"list"}},
		{"config get ", []string{"color", "prompt"}},
		{"config get p", []string{"prompt"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			require.Equal(t, tt.want, Candidates(suggester(), nil, tt.line))
		})
	}
}

func TestScript(t *testing.T) {
	tests := []struct {
		shell    Shell
		contains []string
	}{
		{ShellBash, []string{"_my_tool_complete()", "my-tool __complete \"$line\"", "complete -o default -F _my_tool_complete my-tool"}},
		{ShellZsh, []string{"#compdef my-tool", "compdef _my_tool_complete my-tool", "compadd -a candidates"}},
		{ShellFish, []string{"complete -c my-tool -f", "(my-tool __complete (commandline -cp"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			script, err := Script(tt.shell, "my-tool")
			require.NoError(t, err)
			for _, want := range tt.contains {
				require.Contains(t, script, want)
			}
			require.NotContains(t, script, "%!")
		})
	}
}

func TestScript_Unsupported(t *testing.T) {
	_, err := Script("powershell", "cmdtree")
	require.EqualError(t, err, "unsupported shell: powershell")
}

func TestSourceInstructions(t *testing.T) {
	require.Equal(t, `eval "$(cmdtree completion bash)"`, SourceInstructions(ShellBash, "cmdtree"))
	require.Equal(t, "cmdtree completion fish | source", SourceInstructions(ShellFish, "cmdtree"))
	require.Equal(t, "~/.zshrc", RcFile(ShellZsh))
	require.Empty(t, RcFile("tcsh"))
}

func TestShellNames(t *testing.T) {
	require.Equal(t, []string{"bash", "zsh", "fish"}, ShellNames())
}
