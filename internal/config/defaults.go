package config

import (
	"strconv"

	"github.com/footprint-tools/cmdtree/internal/domain"
)

// Defaults holds the in-code default of every key; nothing here is
// persisted until the user sets it.
var Defaults = buildDefaults()

func buildDefaults() map[string]func() string {
	defaults := make(map[string]func() string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		value := key.Default
		defaults[key.Name] = func() string { return value }
	}
	return defaults
}

// Get returns the value for a config key.
// It checks the config file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	if cfg, err := load(); err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns all config values (user overrides merged with defaults).
// An unreadable or malformed file yields the defaults.
func GetAll() (map[string]string, error) {
	result := make(map[string]string, len(Defaults))

	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	cfg, err := load()
	if err != nil {
		return result, nil
	}

	for key, value := range cfg {
		result[key] = value
	}

	return result, nil
}

// GetBool returns key parsed as a boolean, or fallback when it is unset or
// not a boolean.
func GetBool(key string, fallback bool) bool {
	value, ok := Get(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// GetInt returns key parsed as an integer, or fallback.
func GetInt(key string, fallback int) int {
	value, ok := Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// DefaultLines renders a commented config file holding every visible key
// at its default value.
func DefaultLines() []string {
	lines := []string{
		"# cmdtree configuration",
		"# Edit values below or use: config set <key> <value>",
		"",
	}

	for _, key := range domain.VisibleConfigKeys() {
		lines = append(lines, "# "+key.Description)
		lines = append(lines, key.Name+"="+quote(Defaults[key.Name]()))
	}

	return lines
}

func load() (map[string]string, error) {
	lines, err := ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}
