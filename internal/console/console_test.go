package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chzyer/readline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/arguments"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/manager"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
)

// newManager registers "say <text>" and "calc add|sub <a> <b>", both
// printing to out.
func newManager(out io.Writer) *manager.Manager {
	binary := func(name string) *dispatchers.Node {
		return dispatchers.Literal(name).Then(
			dispatchers.Argument("a", arguments.Number()).Then(
				dispatchers.Argument("b", arguments.Number()).Runs(func(_ any, ctx dispatchers.Context) error {
					fmt.Fprintln(out, name, ctx.Float("a"), ctx.Float("b"))
					return nil
				})))
	}

	m := manager.New()
	m.MustRegister(
		dispatchers.Literal("say").Then(
			dispatchers.Argument("text", arguments.GreedyText()).Runs(func(_ any, ctx dispatchers.Context) error {
				fmt.Fprintln(out, ctx.String("text"))
				return nil
			})),
		dispatchers.Literal("calc").Then(binary("add")).Then(binary("sub")),
	)
	return m
}

func TestIsExit(t *testing.T) {
	for _, line := range []string{"exit", "quit", "  exit "} {
		require.True(t, IsExit(line), line)
	}
	for _, line := range []string{"", "exit now", "say exit"} {
		require.False(t, IsExit(line), line)
	}
}

func TestCompleter(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   []string
		length int
		hint   string
	}{
		{"root prefix", "sa", []string{"y "}, 2, ""},
		{"all roots", "", []string{"calc", "say"}, 0, ""},
		{"children", "calc ", []string{"add", "sub"}, 0, ""},
		{"child prefix", "calc s", []string{"ub "}, 1, ""},
		{"argument hint", "calc add ", nil, 0, "<a>\n"},
		{"no match", "xyz", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewCompleter(newManager(io.Discard), nil, &out)

			got, length := c.Do([]rune(tt.line), len([]rune(tt.line)))

			var words []string
			for _, g := range got {
				words = append(words, string(g))
			}
			require.Equal(t, tt.want, words)
			require.Equal(t, tt.length, length)
			require.Equal(t, tt.hint, strings.TrimPrefix(out.String(), "\n"))
		})
	}
}

func TestCompleterUsesCursorPosition(t *testing.T) {
	c := NewCompleter(newManager(io.Discard), nil, nil)
	got, length := c.Do([]rune("ca add"), 2)
	require.Equal(t, [][]rune{[]rune("lc ")}, got)
	require.Equal(t, 2, length)
}

type fakeReader struct {
	lines  []string
	errs   []error
	closed bool
}

func (r *fakeReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line, err := r.lines[0], r.errs[0]
	r.lines, r.errs = r.lines[1:], r.errs[1:]
	return line, err
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func reader(lines ...string) *fakeReader {
	return &fakeReader{lines: lines, errs: make([]error, len(lines))}
}

func TestLineServe(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLine(newManager(&out), nil, LineConfig{Stdout: &out, Stderr: &errOut}, nil)

	r := reader("say hello", "", "  calc add 1 2  ", "sya hi", "exit", "say never")
	require.NoError(t, l.Serve(context.Background(), r))

	require.True(t, r.closed)
	require.Equal(t, "hello\nadd 1 2\n", out.String())
	require.Contains(t, errOut.String(), "Unknown command: sya<--")
	require.Contains(t, errOut.String(), "Did you mean: say?")
}

func TestLineServeInterruptAndEOF(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(newManager(&out), nil, LineConfig{Stdout: &out, Stderr: io.Discard}, nil)

	r := &fakeReader{
		lines: []string{"", "say a"},
		errs:  []error{readline.ErrInterrupt, nil},
	}
	require.NoError(t, l.Serve(context.Background(), r))
	require.Equal(t, "a\n", out.String())
}

func TestLineServeReadError(t *testing.T) {
	l := NewLine(newManager(io.Discard), nil, LineConfig{Stdout: io.Discard, Stderr: io.Discard}, nil)
	r := &fakeReader{lines: []string{""}, errs: []error{errors.New("tty gone")}}
	require.ErrorContains(t, l.Serve(context.Background(), r), "tty gone")
}

func TestLineServeStopsOnContext(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(newManager(&out), nil, LineConfig{Stdout: &out, Stderr: io.Discard}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, l.Serve(ctx, reader("say a")))
	require.Empty(t, out.String())
}

func TestTranscript(t *testing.T) {
	tr := NewTranscript()

	_, _ = tr.Write([]byte("one\ntw"))
	require.Equal(t, []string{"one", "tw"}, tr.Lines())
	require.Equal(t, 1, tr.Len())

	_, _ = tr.Write([]byte("o\r\n"))
	tr.Append("> cmd")
	_, _ = tr.Write([]byte("partial"))
	tr.Append("next")
	require.Equal(t, []string{"one", "two", "> cmd", "partial", "next"}, tr.Lines())
}

func TestTranscriptIsBounded(t *testing.T) {
	tr := NewTranscript()
	for i := 0; i < maxTranscriptLines+5; i++ {
		tr.Append(fmt.Sprint(i))
	}
	lines := tr.Lines()
	require.Len(t, lines, maxTranscriptLines)
	require.Equal(t, "5", lines[0])
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func newTestTUI() (tea.Model, *Transcript) {
	tr := NewTranscript()
	m := newTUIModel(newManager(tr), nil, tr, TUIConfig{Prompt: "> ", Colors: style.Themes["dark"]})
	return m, tr
}

func TestTUISubmit(t *testing.T) {
	m, tr := newTestTUI()

	m = typeText(m, "say hi")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, []string{"> say hi", "hi"}, tr.Lines())
	require.Empty(t, m.(tuiModel).input.Value())

	m = typeText(m, "calc mul 1 2")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	lines := tr.Lines()
	require.Equal(t, "> calc mul 1 2", lines[2])
	require.Contains(t, lines[3], "Unknown argument")
}

func TestTUISuggestions(t *testing.T) {
	m, _ := newTestTUI()
	require.Equal(t, []string{"say", "calc"}, m.(tuiModel).suggestions.Strings())

	m = typeText(m, "calc ")
	require.Equal(t, []string{"add", "sub"}, m.(tuiModel).suggestions.Strings())

	m = typeText(m, "add ")
	require.Equal(t, "<a>", m.(tuiModel).suggestions.CompleteHint)
}

func TestTUIQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{"esc", []tea.KeyMsg{{Type: tea.KeyEsc}}},
		{"ctrl+c", []tea.KeyMsg{{Type: tea.KeyCtrlC}}},
		{"ctrl+d on empty input", []tea.KeyMsg{{Type: tea.KeyCtrlD}}},
		{"exit", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("exit")}, {Type: tea.KeyEnter}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestTUI()
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(k)
			}
			require.NotNil(t, cmd)
			require.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestTUIView(t *testing.T) {
	m, _ := newTestTUI()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = typeText(m, "say hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	require.Contains(t, view, "> say hello")
	require.Contains(t, view, "calc")
	require.Contains(t, view, tuiFooter)
	require.Len(t, strings.Split(view, "\n"), 12)
}

func TestTUIScroll(t *testing.T) {
	m, tr := newTestTUI()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	for i := 0; i < 30; i++ {
		tr.Append(fmt.Sprint("line ", i))
	}

	require.Contains(t, m.View(), "line 29")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	require.Equal(t, 6, m.(tuiModel).scroll)
	require.NotContains(t, m.View(), "line 29")
	require.Contains(t, m.View(), "line 23")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.Zero(t, m.(tuiModel).scroll)
}

// blockingReader blocks in Readline until Close is called.
type blockingReader struct {
	reading chan struct{}
	closed  chan struct{}
	once    sync.Once
}

func (r *blockingReader) Readline() (string, error) {
	close(r.reading)
	<-r.closed
	return "", errors.New("use of closed reader")
}

func (r *blockingReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func TestLineServeCancelUnblocksRead(t *testing.T) {
	l := NewLine(newManager(io.Discard), nil, LineConfig{Stdout: io.Discard, Stderr: io.Discard}, nil)
	r := &blockingReader{reading: make(chan struct{}), closed: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, r) }()

	<-r.reading
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
