// cmdtree is an interactive command console built on the cmdtree
// dispatch engine. With arguments it runs them as a single command line
// and exits; without, it starts a readline console or, with --tui, a full
// screen one.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/footprint-tools/cmdtree/internal/actions"
	"github.com/footprint-tools/cmdtree/internal/app"
	"github.com/footprint-tools/cmdtree/internal/cli"
	"github.com/footprint-tools/cmdtree/internal/completions"
	"github.com/footprint-tools/cmdtree/internal/config"
	"github.com/footprint-tools/cmdtree/internal/console"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/manager"
	"github.com/footprint-tools/cmdtree/internal/paths"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// exitUsage is returned for unparseable flags.
const exitUsage = 2

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	tui         bool
	plain       bool
	noColor     bool
	noPager     bool
	pager       string
	logLevel    string
	user        string
	level       int
	metricsAddr string
	help        bool
	version     bool
}

// parseFlags parses the leading flags. Everything after the first
// positional argument belongs to the command line.
func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options
	fs := pflag.NewFlagSet("cmdtree", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)

	fs.BoolVar(&opts.tui, "tui", false, "start the full screen console")
	fs.BoolVar(&opts.plain, "plain", false, "start the line console even when --tui is set")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.noPager, "no-pager", false, "never page long output")
	fs.StringVar(&opts.pager, "pager", "", "pager command for long output")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&opts.user, "user", defaultUser(), "name of the command source")
	fs.IntVar(&opts.level, "source-level", domain.LevelAdmin, "permission level of the command source (0 guest, 1 member, 2 admin)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")
	fs.BoolVarP(&opts.version, "version", "v", false, "print the version")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if opts.help {
		fmt.Fprintln(stderr, "Usage: cmdtree [flags] [command...]")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	return opts, fs.Args(), nil
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "cmdtree: %v\n", err)
		return exitUsage
	}
	if opts.help {
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "cmdtree version %s\n", app.Version)
		return 0
	}

	interactive := len(rest) == 0
	useTUI := interactive && opts.tui && !opts.plain

	appOpts := app.DefaultOptions()
	if opts.logLevel != "" {
		appOpts.LogLevel = log.ParseLevel(opts.logLevel)
	}
	colorMode, _ := config.Get("color")
	appOpts.StyleEnabled = !opts.noColor && style.ShouldEnable(colorMode, isTerminal(stdout))
	appOpts.PagerDisabled = opts.noPager || interactive
	appOpts.PagerOverride = opts.pager
	appOpts.Output = stdout

	var transcript *console.Transcript
	if useTUI {
		transcript = console.NewTranscript()
		appOpts.Output = transcript
	}

	application, err := app.New(appOpts)
	if err != nil {
		fmt.Fprintf(stderr, "cmdtree: %v\n", err)
		return 1
	}
	defer func() { _ = app.Close(application) }()

	metrics := manager.NewMetrics()
	m := manager.New(
		manager.WithLogger(application.Logger),
		manager.WithStyler(application.Styler),
		manager.WithHistory(application.Store),
		manager.WithMetrics(metrics),
	)
	m.MustRegister(cli.BuildTree(actions.New(actions.DefaultDeps(application, m, app.Version)))...)

	if opts.metricsAddr != "" {
		srv := serveMetrics(opts.metricsAddr, metrics, application.Logger)
		defer shutdown(srv)
	}

	src := domain.Source{User: opts.user, Level: opts.level}

	if !interactive && rest[0] == completions.CompleteCommand {
		for _, word := range completions.Candidates(m, src, strings.Join(rest[1:], " ")) {
			fmt.Fprintln(stdout, word)
		}
		return 0
	}

	if !interactive {
		return execute(m, src, strings.Join(rest, " "), stderr)
	}

	if useTUI {
		prompt, _ := config.Get("prompt")
		tui := console.NewTUI(m, src, transcript, console.TUIConfig{
			Prompt: prompt,
			Colors: style.GetColors(),
		})
		if err := tui.Run(ctx); err != nil {
			fmt.Fprintf(stderr, "cmdtree: %v\n", err)
			return 1
		}
		return 0
	}

	prompt, _ := config.Get("prompt")
	line := console.NewLine(m, src, console.LineConfig{
		Prompt:      prompt,
		HistoryFile: paths.ReadlineHistoryPath(),
		Stdout:      stdout,
		Stderr:      stderr,
	}, application.Logger)
	if err := line.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "cmdtree: %v\n", err)
		return 1
	}
	return 0
}

// execute runs a single command line and returns the process exit code.
func execute(m *manager.Manager, src domain.Source, line string, stderr io.Writer) int {
	err := m.Execute(src, line)
	if err == nil {
		return 0
	}
	if manager.ShouldReport(err) {
		fmt.Fprintln(stderr, m.Report(err))
	}
	if ue, ok := usage.As(err); ok {
		return ue.GetExitCode()
	}
	return 1
}

func serveMetrics(addr string, metrics *manager.Metrics, logger domain.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server: %v", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
