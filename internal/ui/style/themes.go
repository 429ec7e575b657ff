package style

import (
	"os"

	"github.com/muesli/termenv"
)

// ThemeEnv forces the "dark" or "light" theme.
const ThemeEnv = "CMDTREE_THEME"

// ColorConfig holds all colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success  string
	Warning  string
	Error    string
	Info     string
	Muted    string
	Header   string
	Literal  string
	Argument string
	UIActive string
	UIDim    string
}

// Themes contains the built-in color themes.
// Dark uses bright colors, light uses dark saturated ones.
var Themes = map[string]ColorConfig{
	"dark": {
		Success:  "10",  // bright green
		Warning:  "11",  // bright yellow
		Error:    "9",   // bright red
		Info:     "14",  // bright cyan
		Muted:    "245", // medium gray
		Header:   "bold",
		Literal:  "12", // bright blue
		Argument: "13", // bright magenta
		UIActive: "12",
		UIDim:    "240",
	},
	"light": {
		Success:  "28",  // dark green
		Warning:  "130", // dark orange
		Error:    "124", // dark red
		Info:     "27",  // dark blue
		Muted:    "242", // dark gray
		Header:   "bold",
		Literal:  "19", // navy
		Argument: "90", // purple
		UIActive: "27",
		UIDim:    "250",
	},
}

// IsDarkBackground returns true if the terminal has a dark background.
// Uses termenv to query the terminal. Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ThemeName returns the theme to use: $CMDTREE_THEME when it names a theme,
// otherwise one matching the terminal background.
func ThemeName() string {
	if name := os.Getenv(ThemeEnv); name != "" {
		if _, ok := Themes[name]; ok {
			return name
		}
	}
	if IsDarkBackground() {
		return "dark"
	}
	return "light"
}

// LoadColorConfig returns the colors of ThemeName.
func LoadColorConfig() ColorConfig {
	return Themes[ThemeName()]
}
