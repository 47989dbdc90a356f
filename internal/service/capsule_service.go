package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Capsule/internal/cache"
	dom "Capsule/internal/domain"
	"Capsule/internal/mailer"
	"Capsule/internal/rank"
	"Capsule/internal/repo"
	"Capsule/internal/schedule"
	"Capsule/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// Sort orders for the public listing.
const (
	SortLatest   = "latest"
	SortTrending = "trending"
)

type GoalInput struct {
	Text         string
	ExpectedDate string // "2006-01"
	Status       string // empty = pending
}

type ReminderInput struct {
	Type       string
	CustomDays *int
	Enabled    bool
}

type CreateCapsuleInput struct {
	Title       string
	Description string
	UnlockDate  *time.Time
	IsPublic    bool
	Goals       []GoalInput
	Reminder    *ReminderInput
}

// UpdateCapsuleInput is an explicit patch: nil fields stay unchanged.
type UpdateCapsuleInput struct {
	Title       *string
	Description *string
	UnlockDate  *time.Time
	IsPublic    *bool
}

type CapsuleService struct {
	capsules repo.CapsuleRepo
	users    repo.UserRepo
	cache    *cache.CapsuleCache
	mail     mailer.Mailer
	baseURL  string
	sf       singleflight.Group
}

// NewCapsuleService creates a CapsuleService. If c is nil, caching is
// disabled; if m is nil, no confirmation emails go out.
func NewCapsuleService(capsules repo.CapsuleRepo, users repo.UserRepo, c *cache.CapsuleCache, m mailer.Mailer, baseURL string) *CapsuleService {
	return &CapsuleService{capsules: capsules, users: users, cache: c, mail: m, baseURL: baseURL}
}

// Create validates and stores a capsule with its goals and optional reminder
// schedule. The stored status is always locked at creation; live state is a
// pure function of the unlock date. A "capsule sealed" email is sent
// fire-and-forget.
func (s *CapsuleService) Create(ctx context.Context, userID int64, in CreateCapsuleInput) (dom.Capsule, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return dom.Capsule{}, invalid("title", "required")
	}
	if in.Description == "" {
		return dom.Capsule{}, invalid("description", "required")
	}
	if in.UnlockDate == nil {
		return dom.Capsule{}, invalid("unlock_date", "required")
	}

	now := time.Now().UTC()
	c := dom.Capsule{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		UnlockDate:  in.UnlockDate.UTC(),
		IsPublic:    in.IsPublic,
		Status:      dom.StatusLocked,
	}

	for _, g := range in.Goals {
		text := strings.TrimSpace(g.Text)
		if text == "" {
			return dom.Capsule{}, invalid("goals.text", "required")
		}
		if _, err := time.Parse("2006-01", g.ExpectedDate); err != nil {
			return dom.Capsule{}, invalid("goals.expected_date", "must be YYYY-MM")
		}
		status := g.Status
		switch status {
		case "":
			status = dom.GoalPending
		case dom.GoalPending, dom.GoalInProgress, dom.GoalCompleted:
		default:
			return dom.Capsule{}, invalid("goals.status", "must be pending, in-progress or completed")
		}
		c.Goals = append(c.Goals, dom.Goal{
			ID:           uuid.New(),
			Text:         text,
			ExpectedDate: g.ExpectedDate,
			Status:       status,
		})
	}

	// Disabled or absent reminder config means no reminder record at all.
	if in.Reminder != nil && in.Reminder.Enabled {
		rem, err := buildReminder(*in.Reminder, c.UnlockDate, now)
		if err != nil {
			return dom.Capsule{}, err
		}
		c.Reminder = rem
	}

	out, err := s.capsules.Create(ctx, c)
	if err != nil {
		return dom.Capsule{}, err
	}
	if out.IsPublic {
		s.invalidateCache(ctx)
	}
	s.sendSealedEmail(userID, out)
	return out, nil
}

func buildReminder(in ReminderInput, unlockDate, createdAt time.Time) (*dom.Reminder, error) {
	if !dom.ValidReminderType(in.Type) {
		return nil, invalid("reminder.type", "unknown reminder type")
	}
	rem := &dom.Reminder{ID: uuid.New(), Type: in.Type, Enabled: true}
	customDays := 0
	if in.Type == dom.ReminderCustom {
		if in.CustomDays == nil {
			return nil, invalid("reminder.custom_days", "required for custom reminders")
		}
		customDays = *in.CustomDays
		if customDays < schedule.MinCustomDays || customDays > schedule.MaxCustomDays {
			return nil, invalid("reminder.custom_days", "must be between 1 and 365")
		}
		rem.CustomDays = &customDays
	}
	rem.NextSend = schedule.NextSend(unlockDate, in.Type, customDays, createdAt)
	return rem, nil
}

// Get returns one capsule. Private capsules are visible to their owner only;
// existence is checked before ownership, so a present-but-foreign private
// capsule answers forbidden, not not-found.
func (s *CapsuleService) Get(ctx context.Context, requesterID int64, id uuid.UUID) (dom.Capsule, error) {
	c, err := s.capsules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Capsule{}, ErrNotFound
		}
		return dom.Capsule{}, err
	}
	if !c.IsPublic && c.UserID != requesterID {
		return dom.Capsule{}, ErrForbidden
	}
	s.refreshStatus(ctx, &c)
	if requesterID != 0 {
		if liked, err := s.capsules.HasLike(ctx, requesterID, c.ID); err == nil {
			c.Liked = liked
		}
	}
	return c, nil
}

// ListPublic returns the public feed in the requested sort order. The raw
// listing is cached identity-free; liked flags for the requester are layered
// on afterwards.
func (s *CapsuleService) ListPublic(ctx context.Context, sort string, requesterID int64) ([]dom.Capsule, error) {
	if sort != SortTrending {
		sort = SortLatest
	}
	v, err, _ := s.sf.Do("public:"+sort, func() (interface{}, error) {
		if s.cache != nil {
			if list, err := s.cache.GetPublic(ctx, sort); err == nil && list != nil {
				return list, nil
			}
		}
		list, err := s.capsules.ListPublic(ctx)
		if err != nil {
			return nil, err
		}
		// Repo order is newest-first, so trending ties fall back to recency.
		if sort == SortTrending {
			rank.Trending(list)
		} else {
			rank.Latest(list)
		}
		if s.cache != nil {
			_ = s.cache.SetPublic(ctx, sort, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]dom.Capsule)
	list := make([]dom.Capsule, len(shared))
	copy(list, shared)

	now := time.Now().UTC()
	for i := range list {
		list[i].Status = liveStatus(list[i], now)
	}
	if requesterID != 0 && len(list) > 0 {
		ids := make([]uuid.UUID, len(list))
		for i := range list {
			ids[i] = list[i].ID
		}
		if liked, err := s.capsules.LikedByUser(ctx, requesterID, ids); err == nil {
			for i := range list {
				list[i].Liked = liked[list[i].ID]
			}
		}
	}
	return list, nil
}

// ListMine returns the owner's capsules, newest first, public and private.
func (s *CapsuleService) ListMine(ctx context.Context, userID int64) ([]dom.Capsule, error) {
	list, err := s.capsules.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range list {
		list[i].Status = liveStatus(list[i], now)
	}
	return list, nil
}

// Update applies an explicit patch, owner only. Moving the unlock date
// reschedules the capsule's reminder from the new date.
func (s *CapsuleService) Update(ctx context.Context, userID int64, id uuid.UUID, in UpdateCapsuleInput) (dom.Capsule, error) {
	existing, err := s.capsules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Capsule{}, ErrNotFound
		}
		return dom.Capsule{}, err
	}
	if existing.UserID != userID {
		return dom.Capsule{}, ErrForbidden
	}

	patch := existing
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return dom.Capsule{}, invalid("title", "required")
		}
		patch.Title = title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return dom.Capsule{}, invalid("description", "required")
		}
		patch.Description = desc
	}
	unlockChanged := false
	if in.UnlockDate != nil && !in.UnlockDate.UTC().Equal(existing.UnlockDate) {
		patch.UnlockDate = in.UnlockDate.UTC()
		unlockChanged = true
	}
	if in.IsPublic != nil {
		patch.IsPublic = *in.IsPublic
	}

	out, err := s.capsules.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Capsule{}, ErrNotFound
		}
		return dom.Capsule{}, err
	}
	out.Goals = existing.Goals
	out.Reminder = existing.Reminder

	if unlockChanged && existing.Reminder != nil {
		customDays := 0
		if existing.Reminder.CustomDays != nil {
			customDays = *existing.Reminder.CustomDays
		}
		next := schedule.RescheduleFrom(patch.UnlockDate, existing.Reminder.Type, customDays, existing.CreatedAt, time.Now().UTC())
		if err := s.capsules.RescheduleReminder(ctx, id, next); err != nil {
			return dom.Capsule{}, err
		}
		rem := *existing.Reminder
		rem.NextSend = next
		rem.LastSent = nil
		out.Reminder = &rem
	}

	s.invalidateCache(ctx)
	s.refreshStatus(ctx, &out)
	return out, nil
}

// Delete removes a capsule, owner only. Goals, reminders and likes cascade.
func (s *CapsuleService) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	existing, err := s.capsules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	if err := s.capsules.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// ToggleLike flips the requester's like and returns the new state with the
// recomputed count. Private capsules are likeable only by their owner.
func (s *CapsuleService) ToggleLike(ctx context.Context, userID int64, id uuid.UUID) (liked bool, likeCount int, err error) {
	c, err := s.capsules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}
	if !c.IsPublic && c.UserID != userID {
		return false, 0, ErrForbidden
	}
	liked, likeCount, err = s.capsules.ToggleLike(ctx, userID, id)
	if err != nil {
		return false, 0, err
	}
	s.invalidateCache(ctx)
	return liked, likeCount, nil
}

// LikeStatus reports whether the requester has liked the capsule and its
// total count. Anonymous requesters get liked=false.
func (s *CapsuleService) LikeStatus(ctx context.Context, requesterID int64, id uuid.UUID) (liked bool, likeCount int, err error) {
	c, err := s.capsules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}
	if !c.IsPublic && c.UserID != requesterID {
		return false, 0, ErrForbidden
	}
	if requesterID != 0 {
		liked, err = s.capsules.HasLike(ctx, requesterID, id)
		if err != nil {
			return false, 0, err
		}
	}
	return liked, c.LikeCount, nil
}

func liveStatus(c dom.Capsule, now time.Time) string {
	if timeutil.IsUnlocked(c.UnlockDate, now) {
		return dom.StatusUnlocked
	}
	return dom.StatusLocked
}

// refreshStatus recomputes the live status and opportunistically repairs the
// stored cache column when it lags behind.
func (s *CapsuleService) refreshStatus(ctx context.Context, c *dom.Capsule) {
	live := liveStatus(*c, time.Now().UTC())
	if c.Status != live {
		c.Status = live
		if err := s.capsules.SetStatus(ctx, c.ID, live); err != nil {
			log.Printf("capsule %s: refresh status: %v", c.ID, err)
		}
	}
}

func (s *CapsuleService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

// sendSealedEmail dispatches the creation confirmation off the request path.
// Failures are logged and swallowed; they never affect the created capsule.
func (s *CapsuleService) sendSealedEmail(userID int64, c dom.Capsule) {
	if s.mail == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			log.Printf("sealed email: lookup user %d: %v", userID, err)
			return
		}
		subject, html, err := mailer.SealedEmail(mailer.SealedParams{
			UserName:     u.Username,
			CapsuleTitle: c.Title,
			UnlockDate:   timeutil.FormatDate(c.UnlockDate),
			CapsuleURL:   s.baseURL + "/capsule/" + c.ID.String(),
			IsPublic:     c.IsPublic,
		})
		if err != nil {
			log.Printf("sealed email: render: %v", err)
			return
		}
		if err := s.mail.Send(ctx, u.Email, subject, html); err != nil {
			log.Printf("sealed email: send to %s: %v", u.Email, err)
		}
	}()
}
