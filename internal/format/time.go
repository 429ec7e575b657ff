// Package format renders timestamps according to the display_date and
// display_time config keys.
package format

import (
	"strings"
	"time"
)

// Getter looks up a config key, e.g. domain.ConfigProvider.Get.
type Getter func(key string) (string, bool)

// DateTime formats date and time, e.g. "2024-01-23 15:04".
func DateTime(get Getter, t time.Time) string {
	return Date(get, t) + " " + Time(get, t)
}

// Full is DateTime with seconds, e.g. "2024-01-23 15:04:05".
func Full(get Getter, t time.Time) string {
	return Date(get, t) + " " + TimeFull(get, t)
}

// DateTimeShort formats the date without year, e.g. "01-23 15:04".
func DateTimeShort(get Getter, t time.Time) string {
	return DateShort(get, t) + " " + Time(get, t)
}

func Date(get Getter, t time.Time) string {
	return t.Format(dateLayout(lookup(get, "display_date", "yyyy-mm-dd")))
}

func DateShort(get Getter, t time.Time) string {
	return t.Format(shortDateLayout(lookup(get, "display_date", "yyyy-mm-dd")))
}

func Time(get Getter, t time.Time) string {
	if lookup(get, "display_time", "24h") == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

func TimeFull(get Getter, t time.Time) string {
	if lookup(get, "display_time", "24h") == "12h" {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

func lookup(get Getter, key, fallback string) string {
	if get == nil {
		return fallback
	}
	if v, ok := get(key); ok && v != "" {
		return v
	}
	return fallback
}

// dateLayout maps a display_date preset to a Go layout. Anything else is
// taken as a Go layout already.
func dateLayout(setting string) string {
	switch setting {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "dd/mm/yyyy":
		return "02/01/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	default:
		return setting
	}
}

func shortDateLayout(setting string) string {
	switch setting {
	case "mm/dd/yyyy":
		return "01/02"
	case "dd/mm/yyyy":
		return "02/01"
	case "yyyy-mm-dd":
		return "01-02"
	}

	short := setting
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return "Jan 02"
	}
	return short
}
