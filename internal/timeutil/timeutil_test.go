package timeutil

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"elapsed clamps to zero", now.Add(-time.Hour), "0d 00:00:00"},
		{"exactly now", now, "0d 00:00:00"},
		{"one second", now.Add(time.Second), "0d 00:00:01"},
		{"1d 1h 1m 1s", now.Add(90061000 * time.Millisecond), "1d 01:01:01"},
		{"floors sub-second remainder", now.Add(time.Second + 999*time.Millisecond), "0d 00:00:01"},
		{"many days", now.Add(365*24*time.Hour + 5*time.Minute), "365d 00:05:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Countdown(tt.target, now); got != tt.want {
				t.Errorf("Countdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUnlocked(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"past date unlocked", now.Add(-time.Minute), true},
		{"boundary equality unlocked", now, true},
		{"future date locked", now.Add(time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnlocked(tt.date, now); got != tt.want {
				t.Errorf("IsUnlocked(%v, %v) = %v, want %v", tt.date, now, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)
	if got, want := FormatDate(d), "Friday, December 31, 2027"; got != want {
		t.Errorf("FormatDate() = %q, want %q", got, want)
	}
}
