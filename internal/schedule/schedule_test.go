package schedule

import (
	"testing"
	"time"

	"Capsule/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextSend(t *testing.T) {
	createdAt := date(2025, 12, 1)

	tests := []struct {
		name       string
		unlockDate time.Time
		typ        string
		customDays int
		want       *time.Time
	}{
		{"month_before is a flat 30 days", date(2026, 1, 31), domain.ReminderMonthBefore, 0, ptr(date(2026, 1, 1))},
		{"week_before", date(2026, 1, 8), domain.ReminderWeekBefore, 0, ptr(date(2026, 1, 1))},
		{"custom offset", date(2026, 2, 1), domain.ReminderCustom, 10, ptr(date(2026, 1, 22))},
		{"on_unlock is the unlock date itself", date(2026, 3, 15), domain.ReminderOnUnlock, 0, ptr(date(2026, 3, 15))},
		{"recurring first fire 30 days after creation", date(2026, 6, 1), domain.ReminderRecurringMonthly, 0, ptr(date(2025, 12, 31))},
		{"recurring with no room before unlock", date(2025, 12, 15), domain.ReminderRecurringMonthly, 0, nil},
		{"unknown type", date(2026, 1, 1), "yearly", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSend(tt.unlockDate, tt.typ, tt.customDays, createdAt)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NextSend() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("NextSend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	now := date(2026, 1, 10)

	tests := []struct {
		name string
		rem  domain.Reminder
		want bool
	}{
		{
			"due and never sent",
			domain.Reminder{Enabled: true, NextSend: ptr(date(2026, 1, 9))},
			true,
		},
		{
			"due at the exact boundary",
			domain.Reminder{Enabled: true, NextSend: ptr(now)},
			true,
		},
		{
			"not yet due",
			domain.Reminder{Enabled: true, NextSend: ptr(date(2026, 1, 11))},
			false,
		},
		{
			"disabled never fires",
			domain.Reminder{Enabled: false, NextSend: ptr(date(2026, 1, 1))},
			false,
		},
		{
			"no schedule",
			domain.Reminder{Enabled: true},
			false,
		},
		{
			"occurrence already delivered",
			domain.Reminder{Enabled: true, NextSend: ptr(date(2026, 1, 9)), LastSent: ptr(date(2026, 1, 9).Add(5 * time.Hour))},
			false,
		},
		{
			"refires after reschedule past last_sent",
			domain.Reminder{Enabled: true, NextSend: ptr(date(2026, 1, 9)), LastSent: ptr(date(2026, 1, 2))},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.rem, now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRescheduleFrom(t *testing.T) {
	createdAt := date(2025, 12, 1)
	now := date(2026, 3, 10)

	t.Run("recurring skips occurrences already delivered", func(t *testing.T) {
		// Slots run 2025-12-31, 2026-01-30, 2026-03-01, 2026-03-31, ...
		got := RescheduleFrom(date(2026, 12, 1), domain.ReminderRecurringMonthly, 0, createdAt, now)
		if got == nil || !got.Equal(date(2026, 3, 31)) {
			t.Fatalf("RescheduleFrom() = %v, want 2026-03-31", got)
		}
	})

	t.Run("recurring series exhausted by the move", func(t *testing.T) {
		// The next undelivered slot (2026-03-31) falls past the new unlock date.
		got := RescheduleFrom(date(2026, 3, 20), domain.ReminderRecurringMonthly, 0, createdAt, now)
		if got != nil {
			t.Fatalf("RescheduleFrom() = %v, want nil", got)
		}
	})

	t.Run("one-shot keeps its plain offset", func(t *testing.T) {
		got := RescheduleFrom(date(2026, 4, 1), domain.ReminderWeekBefore, 0, createdAt, now)
		if got == nil || !got.Equal(date(2026, 3, 25)) {
			t.Fatalf("RescheduleFrom() = %v, want 2026-03-25", got)
		}
	})

	t.Run("one-shot offset in the past still fires", func(t *testing.T) {
		got := RescheduleFrom(date(2026, 3, 12), domain.ReminderWeekBefore, 0, createdAt, now)
		if got == nil || !got.Equal(date(2026, 3, 5)) {
			t.Fatalf("RescheduleFrom() = %v, want 2026-03-05", got)
		}
	})
}

func TestAdvance(t *testing.T) {
	unlock := date(2026, 3, 1)

	t.Run("recurring advances 30 days", func(t *testing.T) {
		rem := domain.Reminder{Type: domain.ReminderRecurringMonthly, NextSend: ptr(date(2026, 1, 1))}
		got := Advance(rem, unlock)
		if got == nil || !got.Equal(date(2026, 1, 31)) {
			t.Fatalf("Advance() = %v, want 2026-01-31", got)
		}
	})

	t.Run("series ends at the unlock date", func(t *testing.T) {
		rem := domain.Reminder{Type: domain.ReminderRecurringMonthly, NextSend: ptr(date(2026, 2, 15))}
		if got := Advance(rem, unlock); got != nil {
			t.Fatalf("Advance() = %v, want nil", got)
		}
	})

	t.Run("non-recurring types have no next occurrence", func(t *testing.T) {
		rem := domain.Reminder{Type: domain.ReminderWeekBefore, NextSend: ptr(date(2026, 1, 1))}
		if got := Advance(rem, unlock); got != nil {
			t.Fatalf("Advance() = %v, want nil", got)
		}
	})
}

func ptr(t time.Time) *time.Time {
	return &t
}
