package config

import (
	"fmt"
	"strings"
)

const bom = "\uFEFF"

// Parse reads key=value lines. Blank lines and lines starting with # are
// skipped, whitespace around keys and values is trimmed and a value wrapped
// in double quotes is unquoted. Later keys override earlier ones.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value", i+1)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		cfg[key] = unquote(strings.TrimSpace(value))
	}

	return cfg, nil
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}

// quote wraps values that would not survive Parse unchanged.
func quote(value string) string {
	if value != strings.TrimSpace(value) || strings.Contains(value, " ") {
		return `"` + value + `"`
	}
	return value
}
