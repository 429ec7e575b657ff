// Package manager holds the registered root commands of a console and runs
// command lines against them.
//
// A line is offered to every root whose spelling equals its first token,
// in registration order, so several roots may share a spelling and be told
// apart by their requirements. Around the dispatch engine the manager adds
// logging, command history, metrics and did-you-mean hints.
package manager

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// maxHints bounds the did-you-mean alternatives attached to an error.
const maxHints = 3

type root struct {
	node  *dispatchers.Node
	entry dispatchers.EntryNode
}

// Manager is safe for concurrent Execute and Suggest calls. Register roots
// before the console starts.
type Manager struct {
	mu    sync.RWMutex
	roots []root

	logger    domain.Logger
	styler    domain.Styler
	history   domain.HistoryStore
	metrics   *Metrics
	sessionID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to log.NopLogger.
func WithLogger(l domain.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithStyler sets the styler used by Report. Defaults to style.NopStyler.
func WithStyler(s domain.Styler) Option {
	return func(m *Manager) { m.styler = s }
}

// WithHistory records every executed line in s.
func WithHistory(s domain.HistoryStore) Option {
	return func(m *Manager) { m.history = s }
}

// WithMetrics counts executions and suggestion requests in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(m *Manager) { m.sessionID = id }
}

// New creates a manager with a fresh session id.
func New(opts ...Option) *Manager {
	m := &Manager{
		logger:    log.NopLogger{},
		styler:    style.NopStyler{},
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a root command. The node must be a literal and its tree
// must be free of build errors.
func (m *Manager) Register(node *dispatchers.Node) error {
	entry, err := node.Entry()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = append(m.roots, root{node: node, entry: entry})
	m.logger.Debug("manager: registered %s", node)
	return nil
}

// MustRegister registers every node and panics on the first error.
func (m *Manager) MustRegister(nodes ...*dispatchers.Node) {
	for _, n := range nodes {
		if err := m.Register(n); err != nil {
			panic(err)
		}
	}
}

// Roots returns the registered root nodes in registration order.
func (m *Manager) Roots() []*dispatchers.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()

	nodes := make([]*dispatchers.Node, len(m.roots))
	for i, r := range m.roots {
		nodes[i] = r.node
	}
	return nodes
}

// RootSpellings returns every root spelling once, in registration order.
func (m *Manager) RootSpellings() []string {
	var out []string
	for _, n := range m.Roots() {
		for _, s := range n.Literals() {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Session returns the id stamped on this manager's history entries.
func (m *Manager) Session() string {
	return m.sessionID
}

// Metrics returns the metrics passed with WithMetrics, or nil.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

func (m *Manager) matching(token string) []root {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []root
	for _, r := range m.roots {
		if r.node.Matches(token) {
			out = append(out, r)
		}
	}
	return out
}

// Execute runs line against every root matching its first token.
//
// An error from one root does not keep the others from running. Execute
// returns nil when any of them succeeded, otherwise the last error. A root
// that rejected the source with RequirementNotMet did not apply, so its
// error is returned only when no other root failed differently, and then
// the one from the root that parsed the most.
// When no root matches, the error is an UnknownRootArgument. Empty lines
// are ignored.
func (m *Manager) Execute(src any, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	roots := m.matching(dispatchers.GetElement(line))

	var err error
	if len(roots) == 0 {
		err = usage.UnknownRootArgument("", dispatchers.GetElement(line))
	} else {
		err = m.executeRoots(src, line, roots)
	}

	m.addHints(src, line, err)
	m.observe(line, err)
	return err
}

func (m *Manager) executeRoots(src any, line string, roots []root) error {
	var last error
	var denied *usage.Error
	succeeded := false
	for _, r := range roots {
		err := r.entry.Execute(src, line)
		if err == nil {
			succeeded = true
			continue
		}
		m.logger.Debug("manager: %q on %s: %v", line, r.node, err)
		if ue, ok := usage.As(err); ok && ue.Kind == usage.KindRequirementNotMet {
			// The root that got furthest explains the rejection best.
			if denied == nil || len(ue.Parsed) >= len(denied.Parsed) {
				denied = ue
			}
		} else {
			last = err
		}
	}
	switch {
	case succeeded:
		return nil
	case last != nil:
		return last
	case denied != nil:
		return denied
	}
	return nil
}

// addHints attaches did-you-mean alternatives to unknown command errors.
func (m *Manager) addHints(src any, line string, err error) {
	ue, ok := usage.As(err)
	if !ok || ue.IsHandled() || len(ue.Hints) > 0 {
		return
	}

	switch {
	case ue.Is(usage.KindUnknownRootArgument) && ue.Parsed == "":
		token := dispatchers.GetElement(line)
		ue.WithHints(dispatchers.FindSimilar(token, m.RootSpellings(), maxHints)...)

	case ue.Is(usage.KindUnknownArgument) && len(ue.Parsed) < len(line) && strings.HasPrefix(line, ue.Parsed):
		// The offending token follows what was parsed.
		token := dispatchers.GetElement(dispatchers.RemoveDividerPrefix(line[len(ue.Parsed):]))
		prefix := ue.Parsed
		if !strings.HasSuffix(prefix, dispatchers.Divider) {
			prefix += dispatchers.Divider
		}
		candidates := m.suggest(src, prefix).Strings()
		ue.WithHints(dispatchers.FindSimilar(token, candidates, maxHints)...)
	}
}

func (m *Manager) observe(line string, err error) {
	entry := domain.HistoryEntry{
		SessionID: m.sessionID,
		Command:   line,
		Result:    domain.ResultOK,
		Timestamp: time.Now(),
	}

	if err != nil {
		if ue, ok := usage.As(err); ok {
			entry.Result = ue.Kind.String()
			entry.Handled = ue.IsHandled()
			if entry.Handled {
				m.logger.Debug("manager: %q: %v (handled)", line, err)
			} else {
				m.logger.Info("manager: %q: %v", line, err)
			}
		} else {
			entry.Result = domain.ResultError
			m.logger.Error("manager: %q: %v", line, err)
		}
	} else {
		m.logger.Debug("manager: %q: ok", line)
	}

	m.metrics.observeCommand(entry.Result)

	if m.history != nil {
		if herr := m.history.Record(entry); herr != nil {
			m.logger.Warn("manager: record history: %v", herr)
		}
	}
}

// Suggest returns completion candidates for a partially typed line. While
// the first token is still being typed the candidates are root spellings;
// afterwards every matching root contributes. Candidates not extending
// line are dropped.
func (m *Manager) Suggest(src any, line string) dispatchers.Suggestions {
	m.metrics.observeSuggestion()
	return m.suggest(src, line)
}

func (m *Manager) suggest(src any, line string) dispatchers.Suggestions {
	token := dispatchers.GetElement(line)

	if !strings.Contains(line, dispatchers.Divider) {
		var out dispatchers.Suggestions
		for _, s := range m.RootSpellings() {
			out.Items = append(out.Items, dispatchers.Suggestion{Text: s})
		}
		return out.Filter(line)
	}

	var out dispatchers.Suggestions
	for _, r := range m.matching(token) {
		s := r.entry.GenerateSuggestions(src, line)
		out.Items = append(out.Items, s.Items...)
		if s.CompleteHint != "" {
			out.CompleteHint = s.CompleteHint
		}
	}
	return out.Filter(line)
}

// ShouldReport reports whether err still needs to be shown to the user,
// i.e. it is not nil and no error handler marked it as handled.
func ShouldReport(err error) bool {
	if err == nil {
		return false
	}
	if ue, ok := usage.As(err); ok {
		return !ue.IsHandled()
	}
	return true
}

// Report renders err for the console, styled, including did-you-mean
// hints. It returns "" for nil.
func (m *Manager) Report(err error) string {
	if err == nil {
		return ""
	}

	var ue *usage.Error
	if !errors.As(err, &ue) {
		return m.styler.Error("Error: " + err.Error())
	}

	msg := m.styler.Error(ue.Error())
	if len(ue.Hints) > 0 {
		hints := make([]string, len(ue.Hints))
		for i, h := range ue.Hints {
			hints[i] = m.styler.Literal(h)
		}
		msg += "\n\n" + m.styler.Muted("Did you mean: ") + strings.Join(hints, ", ") + m.styler.Muted("?")
	}
	return msg
}
