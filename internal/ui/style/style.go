// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Warning, Literal, etc.) rather than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NoColorEnv disables styling in addition to the standard NO_COLOR.
const NoColorEnv = "CMDTREE_NO_COLOR"

var (
	enabled bool
	colors  ColorConfig

	// Only used when enabled is true.
	successStyle  lipgloss.Style
	warningStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	infoStyle     lipgloss.Style
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	literalStyle  lipgloss.Style
	argumentStyle lipgloss.Style
)

// Init enables or disables styling. NO_COLOR and CMDTREE_NO_COLOR, when set
// to any non-empty value, disable styling regardless of enable.
//
// This function should be called once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv(NoColorEnv) != "" {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		colors = LoadColorConfig()
		initStyles(colors)
	}
}

// ShouldEnable resolves the color config value ("auto", "always" or
// "never") against whether output is a terminal.
func ShouldEnable(mode string, isTTY bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTTY
	}
}

// GetColors returns the current color configuration.
func GetColors() ColorConfig {
	return colors
}

// initStyles creates the lipgloss styles from the given color configuration.
func initStyles(colors ColorConfig) {
	// Force ANSI256 regardless of TTY detection; Init already decided.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	literalStyle = makeStyle(colors.Literal)
	argumentStyle = makeStyle(colors.Argument).Italic(true)
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles text for informational messages.
func Info(text string) string { return render(infoStyle, text) }

// Header styles text for section headers or titles.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles text for less important or secondary information.
func Muted(text string) string { return render(mutedStyle, text) }

// Literal styles command words in suggestions and the tree view.
func Literal(text string) string { return render(literalStyle, text) }

// Argument styles argument placeholders such as <name>.
func Argument(text string) string { return render(argumentStyle, text) }
