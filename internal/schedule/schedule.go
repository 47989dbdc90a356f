// Package schedule decides when capsule reminders fire. It never sends
// anything itself: dispatch belongs to the mailer, persistence to the repo.
package schedule

import (
	"time"

	"Capsule/internal/domain"
)

const day = 24 * time.Hour

// Day offsets per reminder type. month_before is a flat 30 days, not a
// calendar month.
const (
	monthBeforeDays = 30
	weekBeforeDays  = 7
)

// Bounds for custom reminder offsets; enforced at input validation time.
const (
	MinCustomDays = 1
	MaxCustomDays = 365
)

// recurring_monthly fires every 30 days from capsule creation until the
// unlock date. Like month_before it is a flat period, not calendar months.
const recurringPeriod = 30 * day

// NextSend computes the first dispatch time for a reminder. customDays is
// read only for the custom type and must already be validated. A nil result
// means the reminder has nothing to fire (unknown type, or a recurring
// series whose first slot already falls past the unlock date).
func NextSend(unlockDate time.Time, typ string, customDays int, createdAt time.Time) *time.Time {
	var t time.Time
	switch typ {
	case domain.ReminderMonthBefore:
		t = unlockDate.Add(-monthBeforeDays * day)
	case domain.ReminderWeekBefore:
		t = unlockDate.Add(-weekBeforeDays * day)
	case domain.ReminderCustom:
		t = unlockDate.Add(-time.Duration(customDays) * day)
	case domain.ReminderOnUnlock:
		t = unlockDate
	case domain.ReminderRecurringMonthly:
		t = createdAt.Add(recurringPeriod)
		if t.After(unlockDate) {
			return nil
		}
	default:
		return nil
	}
	return &t
}

// RescheduleFrom recomputes next_send after the unlock date moves. One-shot
// types take their usual offset from the new date, even when that already lies
// in the past (the missed occasion fires on the next tick). Recurring series
// skip ahead to the first slot at or after now, so occurrences delivered
// before the change do not replay.
func RescheduleFrom(unlockDate time.Time, typ string, customDays int, createdAt, now time.Time) *time.Time {
	next := NextSend(unlockDate, typ, customDays, createdAt)
	if next == nil || typ != domain.ReminderRecurringMonthly {
		return next
	}
	t := *next
	for t.Before(now) {
		t = t.Add(recurringPeriod)
		if t.After(unlockDate) {
			return nil
		}
	}
	return &t
}

// IsDue reports whether r should be dispatched at now. Delivery is
// at-most-once per computed next_send: once last_sent catches up with
// next_send the occurrence is spent.
func IsDue(r domain.Reminder, now time.Time) bool {
	if !r.Enabled || r.NextSend == nil {
		return false
	}
	if r.NextSend.After(now) {
		return false
	}
	return r.LastSent == nil || r.LastSent.Before(*r.NextSend)
}

// Advance returns the occurrence after r.NextSend for a recurring series,
// or nil once the next slot would pass the unlock date. Non-recurring types
// have no further occurrences.
func Advance(r domain.Reminder, unlockDate time.Time) *time.Time {
	if r.Type != domain.ReminderRecurringMonthly || r.NextSend == nil {
		return nil
	}
	next := r.NextSend.Add(recurringPeriod)
	if next.After(unlockDate) {
		return nil
	}
	return &next
}
