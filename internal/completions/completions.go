// Package completions generates shell completion scripts for cmdtree.
// The scripts call back into the binary's hidden __complete command,
// which answers from the same suggestion engine the console uses.
package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
)

// CompleteCommand is the hidden first argument the scripts invoke.
const CompleteCommand = "__complete"

// Shell is a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ShellNames returns Shells as strings.
func ShellNames() []string {
	names := make([]string, len(Shells))
	for i, s := range Shells {
		names[i] = string(s)
	}
	return names
}

// Suggester is implemented by *manager.Manager.
type Suggester interface {
	Suggest(src any, line string) dispatchers.Suggestions
}

// Candidates returns the words that may replace the last word of line.
func Candidates(s Suggester, src any, line string) []string {
	start := strings.LastIndex(line, " ") + 1

	var words []string
	for _, cmd := range s.Suggest(src, line).Commands() {
		if len(cmd) < start {
			continue
		}
		words = append(words, cmd[start:])
	}
	return words
}

// Script returns the completion script for shell, completing bin.
func Script(shell Shell, bin string) (string, error) {
	switch shell {
	case ShellBash:
		return fmt.Sprintf(bashTemplate, funcName(bin), bin, CompleteCommand, funcName(bin), bin), nil
	case ShellZsh:
		return fmt.Sprintf(zshTemplate, bin, funcName(bin), bin, CompleteCommand, funcName(bin), bin), nil
	case ShellFish:
		return fmt.Sprintf(fishTemplate, bin, bin, CompleteCommand), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

// SourceInstructions tells how to load the script for shell.
func SourceInstructions(shell Shell, bin string) string {
	switch shell {
	case ShellFish:
		return fmt.Sprintf("%s completion fish | source", bin)
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s completion %s)"`, bin, shell)
	default:
		return ""
	}
}

// RcFile returns the startup file the instructions belong in.
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	default:
		return ""
	}
}

// BinaryName returns the name the running binary was invoked as.
func BinaryName() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Base(exe)
	}
	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return "cmdtree"
}

func funcName(bin string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(bin) + "_complete"
}

const bashTemplate = `# bash completion for %[2]s
%[1]s() {
    local line="${COMP_LINE:0:COMP_POINT}"
    line="${line#* }"
    local IFS=$'\n'
    COMPREPLY=($(%[2]s %[3]s "$line" 2>/dev/null))
}
complete -o default -F %[4]s %[5]s
`

const zshTemplate = `#compdef %[1]s
%[2]s() {
    local line="${(j: :)words[2,CURRENT]}"
    local -a candidates
    candidates=("${(@f)$(%[3]s %[4]s "$line" 2>/dev/null)}")
    compadd -a candidates
}
compdef %[5]s %[6]s
`

const fishTemplate = `# fish completion for %[1]s
complete -c %[2]s -f -a '(%[2]s %[3]s (commandline -cp | string replace -r "^\S+\s*" ""))'
`
