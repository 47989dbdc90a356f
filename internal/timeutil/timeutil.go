// Package timeutil holds the pure date arithmetic behind capsule display
// state: countdown rendering, the lock/unlock boundary and display dates.
package timeutil

import (
	"fmt"
	"time"
)

// Countdown renders the time remaining until target as "{d}d {hh}:{mm}:{ss}".
// Always floors; an elapsed target clamps to "0d 00:00:00".
func Countdown(target, now time.Time) string {
	diff := target.Sub(now)
	if diff < 0 {
		return "0d 00:00:00"
	}
	days := diff / (24 * time.Hour)
	hours := (diff / time.Hour) % 24
	minutes := (diff / time.Minute) % 60
	seconds := (diff / time.Second) % 60
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
}

// IsUnlocked reports whether date has been reached. Exact equality counts as
// unlocked.
func IsUnlocked(date, now time.Time) bool {
	return !now.Before(date)
}

// FormatDate renders a long display date, e.g. "Friday, December 31, 2027".
// Display only, never used in lifecycle decisions.
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
