// Package app wires the collaborators of a cmdtree console into a
// domain.Application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/footprint-tools/cmdtree/internal/config"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/paths"
	"github.com/footprint-tools/cmdtree/internal/store"
	"github.com/footprint-tools/cmdtree/internal/ui"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
)

// Version is set at build time with
// -ldflags "-X github.com/footprint-tools/cmdtree/internal/app.Version=v1.0.0".
var Version = "dev"

// Options configures the application factory.
type Options struct {
	// Output options; a nil Output means stdout.
	Output        io.Writer
	PagerDisabled bool
	PagerOverride string

	// Log options
	LogEnabled bool
	LogLevel   log.Level
	LogPath    string // defaults to paths.LogFilePath()

	// History options
	RecordHistory bool
	DBPath        string // defaults to paths.DBPath()

	StyleEnabled bool
}

// DefaultOptions reads the defaults from the config file.
func DefaultOptions() Options {
	level, _ := config.Get("log_level")
	return Options{
		LogEnabled:    config.GetBool("enable_log", true),
		LogLevel:      log.ParseLevel(level),
		RecordHistory: config.GetBool("record_history", true),
		StyleEnabled:  true,
	}
}

// New creates an Application with all dependencies wired up. A logger
// that cannot open its file falls back to NopLogger; a history database
// that cannot be opened is an error.
func New(opts Options) (*domain.Application, error) {
	var logger domain.Logger = log.NopLogger{}
	if opts.LogEnabled {
		logPath := opts.LogPath
		if logPath == "" {
			logPath = paths.LogFilePath()
		}
		if l, err := log.New(logPath, opts.LogLevel); err == nil {
			log.SetDefault(l)
			logger = l
		}
	}

	var history domain.HistoryStore
	if opts.RecordHistory {
		dbPath := opts.DBPath
		if dbPath == "" {
			dbPath = paths.DBPath()
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err := store.New(dbPath)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		history = s
	}

	style.Init(opts.StyleEnabled)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	writerOpts := []ui.WriterOption{ui.WithConfigGetter(config.Get)}
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}

	return &domain.Application{
		Store:  history,
		Config: config.NewProvider(),
		Logger: logger,
		Styler: style.NewStyler(),
		Output: ui.NewWriterTo(out, writerOpts...),
	}, nil
}

// NewForTesting creates an Application without history, logging or
// styling that writes to out.
func NewForTesting(out io.Writer) *domain.Application {
	return &domain.Application{
		Config: config.NewProvider(),
		Logger: log.NopLogger{},
		Styler: style.NopStyler{},
		Output: ui.NewWriterTo(out, ui.WithPagerDisabled()),
	}
}

// Close releases the logger and the history store.
func Close(app *domain.Application) error {
	var errs []error
	if app.Logger != nil {
		errs = append(errs, app.Logger.Close())
	}
	if app.Store != nil {
		errs = append(errs, app.Store.Close())
	}
	return errors.Join(errs...)
}
