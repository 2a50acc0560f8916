// Package utils holds small formatting helpers shared by commands.
package utils

import (
	"fmt"
	"time"
)

// FormatSince renders the age of t relative to now as "45s ago", "3h ago",
// "2w ago" and so on. A zero t yields "N/A".
func FormatSince(t, now time.Time) string {
	if t.IsZero() {
		return "N/A"
	}

	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	age := now.Sub(t)
	switch {
	case age < 0:
		return "0s ago"
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age/time.Second))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < day:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	case age < week:
		return fmt.Sprintf("%dd ago", int(age/day))
	case age < month:
		return fmt.Sprintf("%dw ago", int(age/week))
	case age < year:
		return fmt.Sprintf("%dmo ago", int(age/month))
	}
	return fmt.Sprintf("%dy ago", int(age/year))
}
