package manager

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/arguments"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	dbtest "github.com/footprint-tools/cmdtree/internal/testutil"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

type member struct{ level int }

var errBoom = errors.New("boom")

type calls struct {
	mu   sync.Mutex
	list []string
	args map[string]any
}

func (c *calls) record(name string) dispatchers.Callback {
	return func(_ any, ctx dispatchers.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.list = append(c.list, name)
		c.args = ctx.Values()
		return nil
	}
}

func (c *calls) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.list...)
}

func levelAtLeast(n int) func(any) bool {
	return func(src any) bool {
		m, ok := src.(member)
		return ok && m.level >= n
	}
}

func levelExactly(n int) func(any) bool {
	return func(src any) bool {
		m, ok := src.(member)
		return ok && m.level == n
	}
}

func binary(c *calls, name string) *dispatchers.Node {
	return dispatchers.Literal(name).Then(
		dispatchers.Argument("a", arguments.Number()).Then(
			dispatchers.Argument("b", arguments.Number()).Runs(c.record("calc " + name)),
		),
	)
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *calls) {
	t.Helper()
	c := &calls{}
	m := New(opts...)

	m.MustRegister(
		dispatchers.Literal("say").Then(
			dispatchers.Argument("text", arguments.GreedyText()).Runs(c.record("say")),
		),
		dispatchers.Literal("calc").Then(binary(c, "add")).Then(binary(c, "sub")),
		dispatchers.Literal("history").RequiresSource(levelAtLeast(1), "members only").Runs(c.record("history full")),
		dispatchers.Literal("history").RequiresSource(levelExactly(0), "guests only").Runs(c.record("history guest")),
		dispatchers.Literal("fail").Runs(func(any, dispatchers.Context) error { return errBoom }),
	)
	return m, c
}

func TestManager_Execute(t *testing.T) {
	m, c := newTestManager(t)

	require.NoError(t, m.Execute(member{}, "  say hello world \n"))
	require.Equal(t, []string{"say"}, c.names())
	require.Equal(t, "hello world", c.args["text"])

	require.NoError(t, m.Execute(member{}, "calc add 1 2.5"))
	require.Equal(t, 1, c.args["a"])
	require.Equal(t, 2.5, c.args["b"])
}

func TestManager_Execute_EmptyLine(t *testing.T) {
	store := dbtest.NewTestStore(t)
	m, c := newTestManager(t, WithHistory(store))

	require.NoError(t, m.Execute(member{}, "   "))
	require.Empty(t, c.names())

	n, err := store.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestManager_Execute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   any
		line  string
		kind  usage.ErrorKind
		hints []string
	}{
		{
			name:  "unknown root",
			line:  "sya hi",
			kind:  usage.KindUnknownRootArgument,
			hints: []string{"say"},
		},
		{
			name:  "unknown argument",
			line:  "calc ad 1 2",
			kind:  usage.KindUnknownArgument,
			hints: []string{"add", "sub"},
		},
		{
			name: "unknown command",
			line: "calc add 1",
			kind: usage.KindUnknownCommand,
		},
		{
			name: "syntax error",
			line: "calc add one 2",
			kind: usage.KindInvalidNumber,
		},
		{
			name: "every duplicate root rejected",
			src:  nil,
			line: "history",
			kind: usage.KindRequirementNotMet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := newTestManager(t)

			err := m.Execute(tt.src, tt.line)
			ue, ok := usage.As(err)
			require.True(t, ok, "expected usage error, got %v", err)
			require.Equal(t, tt.kind, ue.Kind)
			require.Equal(t, tt.hints, ue.Hints)
			require.Empty(t, c.names())
			require.True(t, ShouldReport(err))
		})
	}
}

func TestManager_Execute_DuplicateRoots(t *testing.T) {
	tests := []struct {
		level int
		want  []string
	}{
		{level: 0, want: []string{"history guest"}},
		{level: 2, want: []string{"history full"}},
	}

	for _, tt := range tests {
		m, c := newTestManager(t)
		require.NoError(t, m.Execute(member{level: tt.level}, "history"))
		require.Equal(t, tt.want, c.names())
	}
}

func TestManager_Execute_DeniedRootDoesNotMaskError(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.Execute(member{level: 1}, "history extra")
	ue, ok := usage.As(err)
	require.True(t, ok)
	require.Equal(t, usage.KindUnknownArgument, ue.Kind)
}

func TestManager_Execute_CallbackErrorPassesThrough(t *testing.T) {
	store := dbtest.NewTestStore(t)
	m, _ := newTestManager(t, WithHistory(store))

	err := m.Execute(member{}, "fail")
	require.ErrorIs(t, err, errBoom)
	require.True(t, ShouldReport(err))
	require.Equal(t, "Error: boom", m.Report(err))

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ResultError, entries[0].Result)
}

func TestManager_Execute_HandledErrorsAreNotReported(t *testing.T) {
	var shown []string
	m := New()
	m.MustRegister(
		dispatchers.Literal("calc").
			Then(dispatchers.Literal("add").Runs(func(any, dispatchers.Context) error { return nil })).
			OnError(usage.KindUnknownArgument, func(_ any, err *usage.Error, _ dispatchers.Context) {
				shown = append(shown, "usage: calc add")
			}, true),
	)

	err := m.Execute(nil, "calc pow")
	ue, ok := usage.As(err)
	require.True(t, ok)
	require.True(t, ue.IsHandled())
	require.Empty(t, ue.Hints)
	require.False(t, ShouldReport(err))
	require.Equal(t, []string{"usage: calc add"}, shown)
}

func TestManager_History(t *testing.T) {
	store := dbtest.NewTestStore(t)
	m, _ := newTestManager(t, WithHistory(store), WithSessionID("session-1"))
	require.Equal(t, "session-1", m.Session())

	require.NoError(t, m.Execute(member{}, "say hi"))
	require.Error(t, m.Execute(member{}, "sya hi"))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "sya hi", entries[0].Command)
	require.Equal(t, "UnknownRootArgument", entries[0].Result)
	require.Equal(t, "say hi", entries[1].Command)
	require.True(t, entries[1].Succeeded())
	for _, e := range entries {
		require.Equal(t, "session-1", e.SessionID)
	}
}

func TestManager_Metrics(t *testing.T) {
	metrics := NewMetrics()
	m, _ := newTestManager(t, WithMetrics(metrics))
	require.Same(t, metrics, m.Metrics())

	require.NoError(t, m.Execute(member{}, "say a"))
	require.NoError(t, m.Execute(member{}, "say b"))
	require.Error(t, m.Execute(member{}, "calc"))
	m.Suggest(member{}, "ca")

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.commands.WithLabelValues(domain.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.commands.WithLabelValues("UnknownCommand")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.suggestions))

	snapshot, err := metrics.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 2.0, snapshot[`cmdtree_commands_total{result="ok"}`])
	require.Equal(t, 1.0, snapshot["cmdtree_suggestions_total"])
}

func TestManager_Suggest(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
		hint string
	}{
		{name: "empty line lists roots once", line: "", want: []string{"say", "calc", "history", "fail"}},
		{name: "root prefix", line: "ca", want: []string{"calc"}},
		{name: "children", line: "calc ", want: []string{"add", "sub"}},
		{name: "child prefix", line: "calc a", want: []string{"add"}},
		{name: "argument hint", line: "calc add ", hint: "<a>"},
		{name: "unknown root", line: "nope ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			got := m.Suggest(member{}, tt.line)
			require.Equal(t, tt.want, got.Strings())
			require.Equal(t, tt.hint, got.CompleteHint)
		})
	}
}

func TestManager_Register_RejectsArgumentRoot(t *testing.T) {
	m := New()
	err := m.Register(dispatchers.Argument("x", arguments.Text()))
	ue, ok := usage.As(err)
	require.True(t, ok)
	require.Equal(t, usage.KindIllegalNodeOperation, ue.Kind)
	require.Empty(t, m.Roots())
}

func TestManager_Report(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.Execute(member{}, "sya hi")
	require.Equal(t, "Unknown command: sya<--\n\nDid you mean: say?", m.Report(err))
	require.Equal(t, "", m.Report(nil))
}

func TestManager_ConcurrentUse(t *testing.T) {
	m, c := newTestManager(t, WithMetrics(NewMetrics()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = m.Execute(member{}, "calc sub 3 1")
				_ = m.Suggest(member{}, "calc s")
			}
		}()
	}
	wg.Wait()

	require.Len(t, c.names(), 200)
	require.Equal(t, 200.0, testutil.ToFloat64(m.Metrics().commands.WithLabelValues(domain.ResultOK)))
}

func TestNew_GeneratesSessionID(t *testing.T) {
	a, b := New(), New()

	_, err := uuid.Parse(a.Session())
	require.NoError(t, err)
	require.NotEqual(t, a.Session(), b.Session())
}
