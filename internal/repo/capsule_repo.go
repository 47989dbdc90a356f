package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dom "Capsule/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DueReminder is a reminder joined with what dispatch needs: the capsule it
// belongs to and its owner's address.
type DueReminder struct {
	Reminder     dom.Reminder
	CapsuleTitle string
	UnlockDate   time.Time
	OwnerName    string
	OwnerEmail   string
}

// CapsuleRepo provides capsule, goal, reminder and like persistence.
type CapsuleRepo interface {
	Create(ctx context.Context, c dom.Capsule) (dom.Capsule, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Capsule, error)
	ListPublic(ctx context.Context) ([]dom.Capsule, error)
	ListByOwner(ctx context.Context, userID int64) ([]dom.Capsule, error)
	Update(ctx context.Context, id uuid.UUID, patch dom.Capsule) (dom.Capsule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error

	ToggleLike(ctx context.Context, userID int64, capsuleID uuid.UUID) (liked bool, likeCount int, err error)
	HasLike(ctx context.Context, userID int64, capsuleID uuid.UUID) (bool, error)
	LikedByUser(ctx context.Context, userID int64, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	RescheduleReminder(ctx context.Context, capsuleID uuid.UUID, nextSend *time.Time) error
	FindDueReminders(ctx context.Context, now time.Time) ([]DueReminder, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time, nextSend *time.Time) error
}

type PGCapsuleRepo struct {
	db *pgxpool.Pool
}

func NewPGCapsuleRepo(db *pgxpool.Pool) *PGCapsuleRepo {
	return &PGCapsuleRepo{db: db}
}

const capsuleColumns = `
	c.id, c.user_id, u.username, c.title, c.description, c.unlock_date,
	c.is_public, c.status, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM capsule_likes l WHERE l.capsule_id = c.id)`

func scanCapsule(row pgx.Row) (dom.Capsule, error) {
	var c dom.Capsule
	err := row.Scan(
		&c.ID, &c.UserID, &c.OwnerName, &c.Title, &c.Description, &c.UnlockDate,
		&c.IsPublic, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.LikeCount,
	)
	return c, err
}

// Create inserts the capsule together with its goals and optional reminder in
// one transaction, so a half-created capsule never exists.
func (r *PGCapsuleRepo) Create(ctx context.Context, c dom.Capsule) (dom.Capsule, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Capsule{}, err
	}
	defer tx.Rollback(ctx)

	var out dom.Capsule
	err = tx.QueryRow(ctx, `
		INSERT INTO capsules (id, user_id, title, description, unlock_date, is_public, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, title, description, unlock_date, is_public, status, created_at, updated_at`,
		c.ID, c.UserID, c.Title, c.Description, c.UnlockDate, c.IsPublic, c.Status,
	).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.UnlockDate,
		&out.IsPublic, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return dom.Capsule{}, fmt.Errorf("insert capsule: %w", err)
	}

	for i := range c.Goals {
		g := c.Goals[i]
		var saved dom.Goal
		err = tx.QueryRow(ctx, `
			INSERT INTO goals (id, capsule_id, text, expected_date, status, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, capsule_id, text, expected_date, status, position`,
			g.ID, out.ID, g.Text, g.ExpectedDate, g.Status, i,
		).Scan(&saved.ID, &saved.CapsuleID, &saved.Text, &saved.ExpectedDate, &saved.Status, &saved.Position)
		if err != nil {
			return dom.Capsule{}, fmt.Errorf("insert goal: %w", err)
		}
		out.Goals = append(out.Goals, saved)
	}

	if c.Reminder != nil {
		rem := c.Reminder
		var saved dom.Reminder
		err = tx.QueryRow(ctx, `
			INSERT INTO reminders (id, capsule_id, type, custom_days, enabled, next_send)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, capsule_id, type, custom_days, enabled, last_sent, next_send`,
			rem.ID, out.ID, rem.Type, rem.CustomDays, rem.Enabled, rem.NextSend,
		).Scan(&saved.ID, &saved.CapsuleID, &saved.Type, &saved.CustomDays, &saved.Enabled, &saved.LastSent, &saved.NextSend)
		if err != nil {
			return dom.Capsule{}, fmt.Errorf("insert reminder: %w", err)
		}
		out.Reminder = &saved
	}

	if err := tx.Commit(ctx); err != nil {
		return dom.Capsule{}, err
	}
	out.OwnerName = c.OwnerName
	return out, nil
}

func (r *PGCapsuleRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Capsule, error) {
	c, err := scanCapsule(r.db.QueryRow(ctx, `
		SELECT`+capsuleColumns+`
		FROM capsules c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, id))
	if err != nil {
		return dom.Capsule{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, capsule_id, text, expected_date, status, position
		FROM goals WHERE capsule_id = $1 ORDER BY position`, id)
	if err != nil {
		return dom.Capsule{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var g dom.Goal
		if err := rows.Scan(&g.ID, &g.CapsuleID, &g.Text, &g.ExpectedDate, &g.Status, &g.Position); err != nil {
			return dom.Capsule{}, err
		}
		c.Goals = append(c.Goals, g)
	}
	if err := rows.Err(); err != nil {
		return dom.Capsule{}, err
	}

	var rem dom.Reminder
	err = r.db.QueryRow(ctx, `
		SELECT id, capsule_id, type, custom_days, enabled, last_sent, next_send
		FROM reminders WHERE capsule_id = $1`, id,
	).Scan(&rem.ID, &rem.CapsuleID, &rem.Type, &rem.CustomDays, &rem.Enabled, &rem.LastSent, &rem.NextSend)
	if err == nil {
		c.Reminder = &rem
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.Capsule{}, err
	}
	return c, nil
}

func (r *PGCapsuleRepo) ListPublic(ctx context.Context) ([]dom.Capsule, error) {
	return r.list(ctx, `
		SELECT`+capsuleColumns+`
		FROM capsules c JOIN users u ON u.id = c.user_id
		WHERE c.is_public ORDER BY c.created_at DESC`)
}

func (r *PGCapsuleRepo) ListByOwner(ctx context.Context, userID int64) ([]dom.Capsule, error) {
	return r.list(ctx, `
		SELECT`+capsuleColumns+`
		FROM capsules c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1 ORDER BY c.created_at DESC`, userID)
}

func (r *PGCapsuleRepo) list(ctx context.Context, query string, args ...any) ([]dom.Capsule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Capsule
	for rows.Next() {
		c, err := scanCapsule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCapsuleRepo) Update(ctx context.Context, id uuid.UUID, patch dom.Capsule) (dom.Capsule, error) {
	return scanCapsule(r.db.QueryRow(ctx, `
		UPDATE capsules c SET title = $2, description = $3, unlock_date = $4, is_public = $5, updated_at = NOW()
		FROM users u
		WHERE c.id = $1 AND u.id = c.user_id
		RETURNING`+capsuleColumns,
		id, patch.Title, patch.Description, patch.UnlockDate, patch.IsPublic))
}

// Delete removes the capsule; goals, reminders and likes go with it via
// ON DELETE CASCADE.
func (r *PGCapsuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM capsules WHERE id = $1`, id)
	return err
}

// SetStatus refreshes the cached status column. Display state never reads it
// back; it only serves filtering and dashboards.
func (r *PGCapsuleRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE capsules SET status = $2 WHERE id = $1`, id, status)
	return err
}

// ToggleLike flips (userID, capsuleID) membership in one transaction and
// returns the new state with the recomputed count. The unique index on
// (user_id, capsule_id) is the backstop against concurrent double-likes;
// INSERT uses ON CONFLICT DO NOTHING so a race degrades to a no-op.
func (r *PGCapsuleRepo) ToggleLike(ctx context.Context, userID int64, capsuleID uuid.UUID) (bool, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM capsule_likes WHERE user_id = $1 AND capsule_id = $2)`,
		userID, capsuleID,
	).Scan(&exists)
	if err != nil {
		return false, 0, err
	}

	if exists {
		_, err = tx.Exec(ctx, `DELETE FROM capsule_likes WHERE user_id = $1 AND capsule_id = $2`, userID, capsuleID)
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO capsule_likes (user_id, capsule_id) VALUES ($1, $2)
			ON CONFLICT (user_id, capsule_id) DO NOTHING`, userID, capsuleID)
	}
	if err != nil {
		return false, 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM capsule_likes WHERE capsule_id = $1`, capsuleID).Scan(&count); err != nil {
		return false, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return !exists, count, nil
}

func (r *PGCapsuleRepo) HasLike(ctx context.Context, userID int64, capsuleID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM capsule_likes WHERE user_id = $1 AND capsule_id = $2)`,
		userID, capsuleID,
	).Scan(&exists)
	return exists, err
}

// LikedByUser returns which of the given capsules the user has liked.
func (r *PGCapsuleRepo) LikedByUser(ctx context.Context, userID int64, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return liked, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT capsule_id FROM capsule_likes WHERE user_id = $1 AND capsule_id = ANY($2)`,
		userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = true
	}
	return liked, rows.Err()
}

// RescheduleReminder rewrites next_send after an unlock date change and
// clears last_sent so the new occurrence can fire.
func (r *PGCapsuleRepo) RescheduleReminder(ctx context.Context, capsuleID uuid.UUID, nextSend *time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE reminders SET next_send = $2, last_sent = NULL WHERE capsule_id = $1`,
		capsuleID, nextSend)
	return err
}

// FindDueReminders returns enabled reminders whose next_send has passed and
// has not been delivered yet, joined with dispatch context.
func (r *PGCapsuleRepo) FindDueReminders(ctx context.Context, now time.Time) ([]DueReminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.capsule_id, r.type, r.custom_days, r.enabled, r.last_sent, r.next_send,
		       c.title, c.unlock_date, u.username, u.email
		FROM reminders r
		JOIN capsules c ON c.id = r.capsule_id
		JOIN users u ON u.id = c.user_id
		WHERE r.enabled
		  AND r.next_send IS NOT NULL AND r.next_send <= $1
		  AND (r.last_sent IS NULL OR r.last_sent < r.next_send)
		ORDER BY r.next_send`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []DueReminder
	for rows.Next() {
		var d DueReminder
		if err := rows.Scan(
			&d.Reminder.ID, &d.Reminder.CapsuleID, &d.Reminder.Type, &d.Reminder.CustomDays,
			&d.Reminder.Enabled, &d.Reminder.LastSent, &d.Reminder.NextSend,
			&d.CapsuleTitle, &d.UnlockDate, &d.OwnerName, &d.OwnerEmail,
		); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// MarkReminderSent records a dispatch. A non-nil nextSend moves a recurring
// series to its next occurrence; nil leaves next_send alone (the last_sent
// check keeps the spent occurrence from re-firing).
func (r *PGCapsuleRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time, nextSend *time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE reminders
		SET last_sent = $2,
		    next_send = CASE WHEN $3::timestamptz IS NULL THEN next_send ELSE $3 END
		WHERE id = $1`, id, sentAt, nextSend)
	return err
}
