package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder types.
const (
	ReminderMonthBefore      = "month_before"
	ReminderWeekBefore       = "week_before"
	ReminderOnUnlock         = "on_unlock"
	ReminderCustom           = "custom"
	ReminderRecurringMonthly = "recurring_monthly"
)

// ValidReminderType reports whether typ is one of the recognized types.
func ValidReminderType(typ string) bool {
	switch typ {
	case ReminderMonthBefore, ReminderWeekBefore, ReminderOnUnlock,
		ReminderCustom, ReminderRecurringMonthly:
		return true
	}
	return false
}

// Reminder is a scheduled notification owned by its capsule.
// NextSend is computed at creation; LastSent is set after each dispatch so
// the same occurrence is never redelivered.
type Reminder struct {
	ID         uuid.UUID
	CapsuleID  uuid.UUID
	Type       string
	CustomDays *int // set iff Type == custom
	Enabled    bool
	LastSent   *time.Time
	NextSend   *time.Time
}
