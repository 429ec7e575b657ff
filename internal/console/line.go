package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
)

// LineReader is the part of *readline.Instance the line console uses.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// LineConfig configures a line console.
type LineConfig struct {
	Prompt      string
	HistoryFile string // empty disables the readline history file
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// Line is a readline REPL with tab completion.
type Line struct {
	exec   Executor
	src    any
	cfg    LineConfig
	logger domain.Logger
}

func NewLine(exec Executor, src any, cfg LineConfig, logger domain.Logger) *Line {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Line{exec: exec, src: src, cfg: cfg, logger: logger}
}

// Run opens a terminal line editor and serves it until exit, EOF or ctx
// is done.
func (l *Line) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          l.cfg.Prompt,
		HistoryFile:     l.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewCompleter(l.exec, l.src, l.cfg.Stdout),
		Stdin:           l.cfg.Stdin,
		Stdout:          l.cfg.Stdout,
		Stderr:          l.cfg.Stderr,
	})
	if err != nil {
		return fmt.Errorf("console: readline: %w", err)
	}
	return l.Serve(ctx, rl)
}

// Serve reads lines from r until exit, EOF or ctx is done. r is closed on
// return, or as soon as ctx is done to unblock a pending read.
func (l *Line) Serve(ctx context.Context, r LineReader) error {
	var once sync.Once
	closeReader := func() { once.Do(func() { _ = r.Close() }) }
	stop := context.AfterFunc(ctx, closeReader)
	defer func() {
		stop()
		closeReader()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.Readline()
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("console: read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsExit(line) {
			return nil
		}

		if err := runLine(l.exec, l.src, line, l.cfg.Stderr); err != nil {
			l.logger.Debug("console: %q: %v", line, err)
		}
	}
}
