package console

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/ui/splitpanel"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
)

const tuiFooter = "tab complete · ↑/↓ cycle · pgup/pgdn scroll · esc quit"

// TUIConfig configures the full screen console.
type TUIConfig struct {
	Prompt string
	Colors style.ColorConfig
}

// TUI is a bubbletea console: transcript on the left, completions of the
// current input on the right, the input line below.
type TUI struct {
	model tuiModel
}

// NewTUI creates a TUI. Commands must write their output to transcript.
func NewTUI(exec Executor, src any, transcript *Transcript, cfg TUIConfig) *TUI {
	return &TUI{model: newTUIModel(exec, src, transcript, cfg)}
}

// Run blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	p := tea.NewProgram(t.model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type tuiModel struct {
	exec       Executor
	src        any
	transcript *Transcript
	prompt     string
	colors     style.ColorConfig

	input       textinput.Model
	suggestions dispatchers.Suggestions

	width  int
	height int
	scroll int // lines scrolled back from the newest
}

func newTUIModel(exec Executor, src any, transcript *Transcript, cfg TUIConfig) tuiModel {
	input := textinput.New()
	input.Prompt = cfg.Prompt
	input.Placeholder = "help"
	input.ShowSuggestions = true
	input.Focus()

	m := tuiModel{
		exec:       exec,
		src:        src,
		transcript: transcript,
		prompt:     cfg.Prompt,
		colors:     cfg.Colors,
		input:      input,
	}
	m.refreshSuggestions()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-lipgloss.Width(m.prompt)-1, 1)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+d":
		if m.input.Value() == "" {
			return m, tea.Quit
		}

	case "enter":
		return m.submit()

	case "pgup":
		m.scroll = min(m.scroll+m.visibleLines(), max(m.transcript.Len()-1, 0))
		return m, nil

	case "pgdown":
		m.scroll = max(m.scroll-m.visibleLines(), 0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m tuiModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.scroll = 0

	if line == "" {
		m.refreshSuggestions()
		return m, nil
	}
	if IsExit(line) {
		return m, tea.Quit
	}

	m.transcript.Append(m.prompt + line)
	_ = runLine(m.exec, m.src, line, m.transcript)
	m.refreshSuggestions()
	return m, nil
}

func (m *tuiModel) refreshSuggestions() {
	m.suggestions = m.exec.Suggest(m.src, m.input.Value())
	m.input.SetSuggestions(m.suggestions.Commands())
}

// visibleLines is the transcript rows on screen.
func (m tuiModel) visibleLines() int {
	return max(m.paneHeight()-2, 1)
}

// paneHeight leaves room for the input and footer rows.
func (m tuiModel) paneHeight() int {
	return max(m.height-2, 3)
}

func (m tuiModel) View() string {
	if m.width == 0 {
		return m.input.View()
	}

	layout := splitpanel.NewLayout(m.width, splitpanel.DefaultConfig, m.colors)
	height := m.paneHeight()

	lines := m.transcript.Lines()
	end := max(len(lines)-m.scroll, 0)
	start := max(end-m.visibleLines(), 0)
	main := splitpanel.Panel{
		Lines:      lines[start:end],
		ScrollPos:  start,
		TotalItems: len(lines),
	}

	side := splitpanel.Panel{Lines: m.suggestions.Strings()}
	if m.suggestions.CompleteHint != "" {
		side.Lines = append(side.Lines, m.suggestions.CompleteHint)
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.UIDim)).Render(tuiFooter)
	return layout.Render(main, side, height) + "\n" + m.input.View() + "\n" + footer
}
