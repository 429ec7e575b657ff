// Package splitpanel lays out the interactive console: a transcript pane
// on the left and a suggestion pane on the right, each in a rounded
// border with its own scrollbar.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/footprint-tools/cmdtree/internal/ui/style"
)

// frame is border(2) + padding(2) + scrollbar(2).
const frame = 6

// Panel is the content of one pane.
type Panel struct {
	Lines      []string // visible lines, already scrolled
	ScrollPos  int
	TotalItems int // zero means len(Lines)
}

// Config holds layout proportions.
type Config struct {
	SideWidthPercent float64
	SideMinWidth     int
	SideMaxWidth     int
}

// DefaultConfig gives the suggestion pane about a third of the screen.
var DefaultConfig = Config{
	SideWidthPercent: 0.3,
	SideMinWidth:     20,
	SideMaxWidth:     40,
}

// Layout holds computed dimensions.
type Layout struct {
	Width     int
	Height    int
	MainWidth int
	SideWidth int
	FocusSide bool
	Colors    style.ColorConfig
}

// NewLayout computes pane widths for a terminal of the given width.
func NewLayout(width int, cfg Config, colors style.ColorConfig) *Layout {
	side := int(float64(width) * cfg.SideWidthPercent)
	side = max(side, cfg.SideMinWidth)
	side = min(side, cfg.SideMaxWidth)
	side = min(side, max(width-frame-1, 0))

	return &Layout{
		Width:     width,
		MainWidth: width - side,
		SideWidth: side,
		Colors:    colors,
	}
}

// Render draws both panes side by side, height rows tall.
func (l *Layout) Render(main, side Panel, height int) string {
	l.Height = height
	active := lipgloss.Color(l.Colors.UIActive)
	dim := lipgloss.Color(l.Colors.UIDim)

	left := l.buildPanel(main, l.MainWidth, height, !l.FocusSide, active, dim)
	if l.SideWidth <= frame {
		return left
	}
	right := l.buildPanel(side, l.SideWidth, height, l.FocusSide, active, dim)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (l *Layout) buildPanel(panel Panel, width, height int, focused bool, active, dim lipgloss.Color) string {
	contentWidth := max(width-frame, 1)
	visible := max(height-2, 1)

	lines := panel.Lines
	if len(lines) > visible {
		lines = lines[:visible]
	}

	total := panel.TotalItems
	if total == 0 {
		total = len(panel.Lines)
	}
	bar := BuildScrollbar(visible, total, panel.ScrollPos, active, dim, focused)

	rows := make([]string, visible)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w > contentWidth {
			line = Truncate(line, contentWidth)
		} else {
			line += strings.Repeat(" ", contentWidth-w)
		}
		rows[i] = line + " " + bar[i]
	}

	border := dim
	if focused {
		border = active
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

// Truncate shortens s to maxWidth cells, ending in "...".
func Truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= maxWidth-3 {
			return candidate + "..."
		}
	}
	return "..."
}

// MainContentWidth returns the usable width of the transcript pane.
func (l *Layout) MainContentWidth() int {
	return max(l.MainWidth-frame, 1)
}

// SideContentWidth returns the usable width of the suggestion pane.
func (l *Layout) SideContentWidth() int {
	return max(l.SideWidth-frame, 0)
}

// VisibleHeight returns the number of content rows per pane.
func (l *Layout) VisibleHeight() int {
	return max(l.Height-2, 1)
}
