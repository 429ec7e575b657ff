package config

import "strings"

// Set replaces the value of key in lines, keeping an inline comment, or
// appends key=value. It reports whether an existing line was updated.
func Set(lines []string, key, value string) ([]string, bool) {
	value = quote(value)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		k, oldValue, ok := strings.Cut(trimmed, "=")
		if !ok || strings.TrimSpace(k) != key {
			continue
		}

		if idx := strings.Index(oldValue, " #"); idx >= 0 {
			lines[i] = key + "=" + value + " " + strings.TrimSpace(oldValue[idx:])
		} else {
			lines[i] = key + "=" + value
		}
		return lines, true
	}

	lines = append(lines, key+"="+value)
	return lines, false
}

// Unset drops every line assigning key and reports whether one was removed.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out = append(out, line)
			continue
		}

		k, _, ok := strings.Cut(trimmed, "=")
		if ok && strings.TrimSpace(k) == key {
			removed = true
			continue
		}

		out = append(out, line)
	}

	return out, removed
}
