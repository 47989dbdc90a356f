package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date parses unlock_date from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("unlock_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d Date) Ptr() *time.Time { return d.t }

// GoalInput is one sub-goal in a create request.
type GoalInput struct {
	Text         string `json:"text" binding:"required,min=1,max=300"`
	ExpectedDate string `json:"expected_date" binding:"required"` // "2006-01"
	Status       string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}

// ReminderInput configures the capsule's reminder. enabled=false means no
// reminder record is created at all.
type ReminderInput struct {
	Type       string `json:"type" binding:"required,oneof=month_before week_before on_unlock custom recurring_monthly"`
	CustomDays *int   `json:"custom_days"` // required iff type=custom, 1..365
	Enabled    bool   `json:"enabled"`
}

type CreateCapsuleRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=120"`
	Description string         `json:"description" binding:"required,min=1,max=2000"`
	UnlockDate  Date           `json:"unlock_date"` // "2027-01-01" or RFC3339
	IsPublic    *bool          `json:"is_public"`   // default true
	Goals       []GoalInput    `json:"goals" binding:"omitempty,max=20,dive"`
	Reminder    *ReminderInput `json:"reminder"`
}

// UpdateCapsuleRequest is an explicit patch: nil = leave unchanged.
type UpdateCapsuleRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,min=1,max=2000"`
	UnlockDate  *Date   `json:"unlock_date"`
	IsPublic    *bool   `json:"is_public"`
}

type GoalResponse struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	ExpectedDate string `json:"expected_date"`
	Status       string `json:"status"`
}

type ReminderResponse struct {
	Type       string     `json:"type"`
	CustomDays *int       `json:"custom_days,omitempty"`
	Enabled    bool       `json:"enabled"`
	NextSend   *time.Time `json:"next_send"`
	LastSent   *time.Time `json:"last_sent"`
}

type CapsuleResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	UnlockDate  time.Time         `json:"unlock_date"`
	UnlockDay   string            `json:"unlock_day"` // long display form
	Countdown   string            `json:"countdown"`
	Visibility  string            `json:"visibility"` // public|private
	Status      string            `json:"status"`     // locked|unlocked, live
	OwnerID     int64             `json:"owner_id"`
	OwnerName   string            `json:"owner_name"`
	LikeCount   int               `json:"like_count"`
	Liked       bool              `json:"liked"`
	Goals       []GoalResponse    `json:"goals,omitempty"`
	Reminder    *ReminderResponse `json:"reminder,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ListCapsulesResponse struct {
	Items []CapsuleResponse `json:"items"`
}

type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
