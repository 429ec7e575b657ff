package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatches on an isolated registry so several managers
// (and tests) never collide on the default one.
type Metrics struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	suggestions prometheus.Counter
}

// NewMetrics creates the counters and registers them on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cmdtree_commands_total",
			Help: "Executed command lines by result (ok, error or the command error kind).",
		}, []string{"result"}),
		suggestions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cmdtree_suggestions_total",
			Help: "Suggestion requests served.",
		}),
	}
	m.registry.MustRegister(m.commands, m.suggestions)
	return m
}

// Registry returns the registry holding the counters, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Snapshot returns every counter value keyed by metric name, with the
// result label appended for cmdtree_commands_total, e.g.
// "cmdtree_commands_total{result=\"ok\"}".
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			for _, label := range metric.GetLabel() {
				key += "{" + label.GetName() + "=\"" + label.GetValue() + "\"}"
			}
			out[key] = metric.GetCounter().GetValue()
		}
	}
	return out, nil
}

func (m *Metrics) observeCommand(result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(result).Inc()
}

func (m *Metrics) observeSuggestion() {
	if m == nil {
		return
	}
	m.suggestions.Inc()
}
