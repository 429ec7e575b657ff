package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/paths"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.ConfigEnv, filepath.Join(dir, "config"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("NO_COLOR", "1")
}

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRest []string
		check    func(t *testing.T, o options)
	}{
		{
			name:     "command only",
			args:     []string{"say", "hi"},
			wantRest: []string{"say", "hi"},
			check: func(t *testing.T, o options) {
				require.False(t, o.tui)
			},
		},
		{
			name:     "flags before command",
			args:     []string{"--no-color", "--user", "bob", "--source-level", "1", "history"},
			wantRest: []string{"history"},
			check: func(t *testing.T, o options) {
				require.True(t, o.noColor)
				require.Equal(t, "bob", o.user)
				require.Equal(t, 1, o.level)
			},
		},
		{
			name:     "flags after command belong to it",
			args:     []string{"say", "--tui"},
			wantRest: []string{"say", "--tui"},
			check: func(t *testing.T, o options) {
				require.False(t, o.tui)
			},
		},
		{
			name:     "console flags",
			args:     []string{"--tui", "--pager=more", "--no-pager", "--metrics-addr", ":9100"},
			wantRest: []string{},
			check: func(t *testing.T, o options) {
				require.True(t, o.tui)
				require.True(t, o.noPager)
				require.Equal(t, "more", o.pager)
				require.Equal(t, ":9100", o.metricsAddr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, rest, err := parseFlags(tt.args, &bytes.Buffer{})
			require.NoError(t, err)
			require.Equal(t, tt.wantRest, rest)
			tt.check(t, o)
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, _, err := parseFlags([]string{"--bogus"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRun_OneShot(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"say", []string{"say", "hello", "world"}, 0, "hello world\n", ""},
		{"calc", []string{"calc", "add", "2", "3"}, 0, "5\n", ""},
		{"version flag", []string{"--version"}, 0, "cmdtree version dev\n", ""},
		{"unknown root", []string{"sya", "hi"}, 1, "", "Unknown command"},
		{"syntax error", []string{"calc", "add", "x", "1"}, 2, "", "Invalid number"},
		{"bad flag", []string{"--bogus"}, exitUsage, "", "cmdtree: unknown flag: --bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, stdout, stderr := runArgs(t, tt.args...)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantStdout, stdout)
			require.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestRun_SourceLevel(t *testing.T) {
	isolate(t)

	code, stdout, _ := runArgs(t, "--user", "bob", "--source-level", "0", "whoami")
	require.Zero(t, code)
	require.Equal(t, "bob (guest)\n", stdout)

	code, stdout, _ = runArgs(t, "--user", "bob", "--source-level", "0", "history")
	require.Zero(t, code)
	require.Contains(t, stdout, "only kept for members")
}

func TestRun_Complete(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"__complete", "calc "}, "add\nsub\nmul\ndiv\n"},
		{[]string{"__complete", "calc", "m"}, "mul\n"},
		{[]string{"__complete", "completion z"}, "zsh\n"},
		{[]string{"__complete", "nothing"}, ""},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			isolate(t)
			code, stdout, _ := runArgs(t, tt.args...)
			require.Zero(t, code)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestRun_CompletionScript(t *testing.T) {
	isolate(t)
	code, stdout, _ := runArgs(t, "completion", "bash")
	require.Zero(t, code)
	require.Contains(t, stdout, "__complete")
}

func TestRun_SessionPerInvocation(t *testing.T) {
	isolate(t)

	_, first, _ := runArgs(t, "stats")
	_, second, _ := runArgs(t, "stats")
	require.True(t, strings.HasPrefix(first, "Session "))
	require.NotEqual(t, strings.SplitN(first, "\n", 2)[0], strings.SplitN(second, "\n", 2)[0])
}
