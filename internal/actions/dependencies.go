// Package actions implements the callbacks of the demo command tree.
//
// Every collaborator is reached through Deps so commands can be tested
// with fakes.
package actions

import (
	"github.com/footprint-tools/cmdtree/internal/completions"
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/manager"
)

type Deps struct {
	Printf  func(format string, a ...any) (int, error)
	Println func(a ...any) (int, error)
	Pager   func(content string)
	Styler  domain.Styler

	Config  domain.ConfigProvider
	History domain.HistoryStore // nil when history is off

	Roots   func() []*dispatchers.Node
	Metrics func() (map[string]float64, error)
	Session func() string
	Version func() string
	Binary  func() string // name completion scripts complete
}

// Actions holds the callbacks. Its methods have the dispatchers.Callback
// shape.
type Actions struct {
	deps Deps
}

func New(deps Deps) *Actions {
	return &Actions{deps: deps}
}

// DefaultDeps wires the application and the manager running the tree.
func DefaultDeps(app *domain.Application, m *manager.Manager, version string) Deps {
	deps := Deps{
		Printf:  app.Output.Printf,
		Println: app.Output.Println,
		Pager:   app.Output.Pager,
		Styler:  app.Styler,
		Config:  app.Config,
		History: app.Store,
		Roots:   m.Roots,
		Session: m.Session,
		Version: func() string { return version },
		Binary:  completions.BinaryName,
	}
	if metrics := m.Metrics(); metrics != nil {
		deps.Metrics = metrics.Snapshot
	}
	return deps
}
