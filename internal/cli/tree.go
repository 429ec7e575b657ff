// Package cli declares the command tree served by cmdtree.
package cli

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/actions"
	"github.com/footprint-tools/cmdtree/internal/arguments"
	"github.com/footprint-tools/cmdtree/internal/completions"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// BuildTree returns the root commands in registration order. Two roots
// share the spelling "history"; their requirements decide which one runs.
func BuildTree(a *actions.Actions) []*dispatchers.Node {
	calc := calcCommand(a)

	return []*dispatchers.Node{
		helpCommand(a),
		sayCommand(a),
		calc,
		dispatchers.Literal("math").Redirects(calc),
		memberHistoryCommand(a),
		guestHistoryCommand(a),
		configCommand(a),
		dispatchers.Literal("tree").Runs(a.Tree),
		dispatchers.Literal("whoami").Runs(a.Whoami),
		dispatchers.Literal("stats").Runs(a.Stats),
		dispatchers.Literal("version").Runs(a.Version),
		completionCommand(a),
	}
}

// withUsage prints the usage of root when a command under it is incomplete
// or has extra text, and marks the error handled.
func withUsage(a *actions.Actions, root *dispatchers.Node) *dispatchers.Node {
	show := a.ShowUsage(root)
	return root.
		OnError(usage.KindUnknownCommand, show, true).
		OnError(usage.KindUnknownArgument, show, true).
		OnChildError(usage.KindUnknownCommand, show, true).
		OnChildError(usage.KindUnknownArgument, show, true)
}

func helpCommand(a *actions.Actions) *dispatchers.Node {
	return dispatchers.Literal("help", "?").
		Runs(a.Help).
		Then(dispatchers.Argument("command", arguments.Text()).
			Suggests(func(any, dispatchers.Context) []string { return a.RootNames() }).
			Runs(a.HelpCommand))
}

func sayCommand(a *actions.Actions) *dispatchers.Node {
	return withUsage(a, dispatchers.Literal("say", "echo").
		Then(dispatchers.Literal("quoted").
			Then(dispatchers.Argument("message", arguments.QuotedText().NonEmpty()).Runs(a.Say))).
		Then(dispatchers.Argument("message", arguments.GreedyText().AtMaxLength(200)).Runs(a.Say)))
}

func calcCommand(a *actions.Actions) *dispatchers.Node {
	op := func(name string, fn actions.Operator) *dispatchers.Node {
		return dispatchers.Literal(name).Then(
			dispatchers.Argument("a", arguments.Number()).Then(
				dispatchers.Argument("b", arguments.Number()).Runs(a.Calc(fn))))
	}
	return withUsage(a, dispatchers.Literal("calc").
		Then(op("add", actions.Add)).
		Then(op("sub", actions.Sub)).
		Then(op("mul", actions.Mul)).
		Then(op("div", actions.Div)))
}

func memberHistoryCommand(a *actions.Actions) *dispatchers.Node {
	return withUsage(a, dispatchers.Literal("history").
		Requires(atLevel(domain.LevelMember), levelMessage(domain.LevelMember)).
		Runs(a.HistoryList).
		Then(dispatchers.Literal("clear").
			Requires(atLevel(domain.LevelAdmin), levelMessage(domain.LevelAdmin)).
			Runs(a.HistoryClear)).
		Then(dispatchers.Argument("limit", arguments.Integer().InRange(1, 1000)).Runs(a.HistoryList)))
}

// guestHistoryCommand answers every "history ..." line of a guest.
func guestHistoryCommand(a *actions.Actions) *dispatchers.Node {
	return dispatchers.Literal("history").
		Requires(belowLevel(domain.LevelMember), nil).
		Runs(a.HistoryDenied).
		Then(dispatchers.Argument("rest", arguments.GreedyText()).Runs(a.HistoryDenied))
}

func configCommand(a *actions.Actions) *dispatchers.Node {
	key := func() *dispatchers.Node {
		return dispatchers.Argument("key", arguments.Enumeration(domain.VisibleConfigKeyNames()...))
	}
	admin := func(n *dispatchers.Node) *dispatchers.Node {
		return n.Requires(atLevel(domain.LevelAdmin), levelMessage(domain.LevelAdmin))
	}

	return withUsage(a, dispatchers.Literal("config").
		Then(dispatchers.Literal("list").Runs(a.ConfigList)).
		Then(dispatchers.Literal("get").Then(
			dispatchers.Argument("key", arguments.Text()).
				Suggests(func(any, dispatchers.Context) []string { return domain.VisibleConfigKeyNames() }).
				Runs(a.ConfigGet))).
		Then(admin(dispatchers.Literal("set")).Then(key().Then(
			dispatchers.Argument("value", arguments.GreedyText()).Runs(a.ConfigSet)))).
		Then(admin(dispatchers.Literal("unset")).Then(key().Runs(a.ConfigUnset))).
		Then(admin(dispatchers.Literal("reset")).Runs(a.ConfigReset)))
}

func completionCommand(a *actions.Actions) *dispatchers.Node {
	return withUsage(a, dispatchers.Literal("completion").
		Runs(a.Completion).
		Then(dispatchers.Argument("shell", arguments.Enumeration(completions.ShellNames()...)).Runs(a.Completion)))
}

func atLevel(level int) dispatchers.Requirement {
	return func(src any, _ dispatchers.Context) bool {
		return domain.SourceOf(src).Level >= level
	}
}

func belowLevel(level int) dispatchers.Requirement {
	return func(src any, _ dispatchers.Context) bool {
		return domain.SourceOf(src).Level < level
	}
}

func levelMessage(level int) dispatchers.MessageFunc {
	need := domain.Source{Level: level}.LevelName()
	return func(src any, ctx dispatchers.Context) string {
		s := domain.SourceOf(src)
		return fmt.Sprintf("%q needs %s, %s is %s", strings.TrimSpace(ctx.Read()), need, s.User, s.LevelName())
	}
}
