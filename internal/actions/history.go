package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/format"
)

const defaultHistoryLimit = 20

// HistoryList prints the most recent commands, oldest first. The count
// comes from the "limit" binding or the history_limit config key.
func (a *Actions) HistoryList(_ any, ctx dispatchers.Context) error {
	if a.deps.History == nil {
		_, _ = a.deps.Println(a.deps.Styler.Muted("History is disabled (record_history=false)"))
		return nil
	}

	limit := a.historyLimit()
	if ctx.Has("limit") {
		limit = ctx.Int("limit")
	}

	entries, err := a.deps.History.Recent(limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(entries) == 0 {
		_, _ = a.deps.Println(a.deps.Styler.Muted("No commands recorded yet"))
		return nil
	}

	var b strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		b.WriteString(a.formatEntry(entries[i]))
		b.WriteByte('\n')
	}
	a.deps.Pager(b.String())
	return nil
}

func (a *Actions) formatEntry(e domain.HistoryEntry) string {
	line := fmt.Sprintf("%5d  %s  %s",
		e.ID,
		a.deps.Styler.Muted(format.Full(a.deps.Config.Get, e.Timestamp.Local())),
		e.Command,
	)
	if !e.Succeeded() {
		result := e.Result
		if e.Handled {
			result += ", handled"
		}
		line += "  " + a.deps.Styler.Warning("["+result+"]")
	}
	return line
}

func (a *Actions) historyLimit() int {
	value, ok := a.deps.Config.Get("history_limit")
	if !ok {
		return defaultHistoryLimit
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultHistoryLimit
	}
	return n
}

// HistoryClear deletes the recorded commands.
func (a *Actions) HistoryClear(_ any, _ dispatchers.Context) error {
	if a.deps.History == nil {
		_, _ = a.deps.Println(a.deps.Styler.Muted("History is disabled (record_history=false)"))
		return nil
	}

	n, err := a.deps.History.Clear()
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	_, _ = a.deps.Println(a.deps.Styler.Success(fmt.Sprintf("Cleared %d entries", n)))
	return nil
}

// HistoryDenied answers "history" for sources below member level.
func (a *Actions) HistoryDenied(src any, _ dispatchers.Context) error {
	s := domain.SourceOf(src)
	_, _ = a.deps.Printf("%s\n", a.deps.Styler.Warning(
		fmt.Sprintf("History is only kept for members; %s is a %s", s.User, s.LevelName())))
	return nil
}
