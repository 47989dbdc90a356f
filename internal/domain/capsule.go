package domain

import (
	"time"

	"github.com/google/uuid"
)

// Capsule visibility at the API boundary ("public"/"private"); stored as
// a boolean is_public column.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Stored lifecycle status. A cache for filtering only: the live state is
// always recomputed from unlock date vs. current time.
const (
	StatusLocked   = "locked"
	StatusUnlocked = "unlocked"
)

// Capsule is the domain entity for a sealed goal capsule.
// Does not depend on Gin, Postgres or Redis.
type Capsule struct {
	ID          uuid.UUID
	UserID      int64
	OwnerName   string
	Title       string
	Description string
	UnlockDate  time.Time
	IsPublic    bool
	Status      string
	LikeCount   int
	Liked       bool
	Goals       []Goal
	Reminder    *Reminder

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Visibility maps the stored boolean to the two-value domain.
func (c Capsule) Visibility() string {
	if c.IsPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// Goal statuses.
const (
	GoalPending    = "pending"
	GoalInProgress = "in-progress"
	GoalCompleted  = "completed"
)

// Goal is a dated sub-objective owned by its capsule; it is deleted with it.
type Goal struct {
	ID           uuid.UUID
	CapsuleID    uuid.UUID
	Text         string
	ExpectedDate string // year-month, "2006-01"
	Status       string
	Position     int
}
