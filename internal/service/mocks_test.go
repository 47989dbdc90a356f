package service

import (
	"context"
	"sort"
	"time"

	dom "Capsule/internal/domain"
	"Capsule/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type likeKey struct {
	userID    int64
	capsuleID uuid.UUID
}

type rescheduleCall struct {
	capsuleID uuid.UUID
	nextSend  *time.Time
}

// fakeCapsuleRepo is an in-memory CapsuleRepo for service tests.
type fakeCapsuleRepo struct {
	capsules    map[uuid.UUID]dom.Capsule
	likes       map[likeKey]bool
	reschedules []rescheduleCall
	now         time.Time
}

func newFakeCapsuleRepo() *fakeCapsuleRepo {
	return &fakeCapsuleRepo{
		capsules: map[uuid.UUID]dom.Capsule{},
		likes:    map[likeKey]bool{},
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeCapsuleRepo) Create(_ context.Context, c dom.Capsule) (dom.Capsule, error) {
	c.CreatedAt = f.now
	c.UpdatedAt = f.now
	f.capsules[c.ID] = c
	return c, nil
}

func (f *fakeCapsuleRepo) GetByID(_ context.Context, id uuid.UUID) (dom.Capsule, error) {
	c, ok := f.capsules[id]
	if !ok {
		return dom.Capsule{}, pgx.ErrNoRows
	}
	c.LikeCount = f.countLikes(id)
	return c, nil
}

func (f *fakeCapsuleRepo) ListPublic(_ context.Context) ([]dom.Capsule, error) {
	var list []dom.Capsule
	for _, c := range f.capsules {
		if c.IsPublic {
			c.LikeCount = f.countLikes(c.ID)
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeCapsuleRepo) ListByOwner(_ context.Context, userID int64) ([]dom.Capsule, error) {
	var list []dom.Capsule
	for _, c := range f.capsules {
		if c.UserID == userID {
			c.LikeCount = f.countLikes(c.ID)
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeCapsuleRepo) Update(_ context.Context, id uuid.UUID, patch dom.Capsule) (dom.Capsule, error) {
	existing, ok := f.capsules[id]
	if !ok {
		return dom.Capsule{}, pgx.ErrNoRows
	}
	existing.Title = patch.Title
	existing.Description = patch.Description
	existing.UnlockDate = patch.UnlockDate
	existing.IsPublic = patch.IsPublic
	existing.UpdatedAt = f.now
	f.capsules[id] = existing
	return existing, nil
}

func (f *fakeCapsuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.capsules, id)
	for k := range f.likes {
		if k.capsuleID == id {
			delete(f.likes, k)
		}
	}
	return nil
}

func (f *fakeCapsuleRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	c, ok := f.capsules[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Status = status
	f.capsules[id] = c
	return nil
}

func (f *fakeCapsuleRepo) ToggleLike(_ context.Context, userID int64, capsuleID uuid.UUID) (bool, int, error) {
	k := likeKey{userID, capsuleID}
	liked := !f.likes[k]
	if liked {
		f.likes[k] = true
	} else {
		delete(f.likes, k)
	}
	return liked, f.countLikes(capsuleID), nil
}

func (f *fakeCapsuleRepo) HasLike(_ context.Context, userID int64, capsuleID uuid.UUID) (bool, error) {
	return f.likes[likeKey{userID, capsuleID}], nil
}

func (f *fakeCapsuleRepo) LikedByUser(_ context.Context, userID int64, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if f.likes[likeKey{userID, id}] {
			liked[id] = true
		}
	}
	return liked, nil
}

func (f *fakeCapsuleRepo) RescheduleReminder(_ context.Context, capsuleID uuid.UUID, nextSend *time.Time) error {
	f.reschedules = append(f.reschedules, rescheduleCall{capsuleID, nextSend})
	c, ok := f.capsules[capsuleID]
	if ok && c.Reminder != nil {
		rem := *c.Reminder
		rem.NextSend = nextSend
		rem.LastSent = nil
		c.Reminder = &rem
		f.capsules[capsuleID] = c
	}
	return nil
}

func (f *fakeCapsuleRepo) FindDueReminders(_ context.Context, _ time.Time) ([]repo.DueReminder, error) {
	return nil, nil
}

func (f *fakeCapsuleRepo) MarkReminderSent(_ context.Context, _ uuid.UUID, _ time.Time, _ *time.Time) error {
	return nil
}

func (f *fakeCapsuleRepo) countLikes(capsuleID uuid.UUID) int {
	n := 0
	for k := range f.likes {
		if k.capsuleID == capsuleID {
			n++
		}
	}
	return n
}

// fakeUserRepo is an in-memory UserRepo.
type fakeUserRepo struct {
	users map[int64]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]dom.User{}}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	id := int64(len(f.users) + 1)
	u := dom.User{ID: id, Username: username, Email: email, PasswordHash: passwordHash}
	f.users[id] = u
	return u, nil
}
