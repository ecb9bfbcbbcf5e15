package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// RelativeTime renders t as a human-relative string ("5m ago", "2h ago",
// "3d ago") against now. Presentation-layer derivation, recomputed per render.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	hours := int(diff.Hours())
	switch {
	case hours > 24:
		return fmt.Sprintf("%dd ago", hours/24)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
}
