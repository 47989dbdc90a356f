// Package worker runs the periodic reminder dispatch loop: find due
// reminders, send the email, mark them sent, advance recurring series.
// Dispatch is at-least-once: a crash between send and mark can duplicate
// one email on the next run.
package worker

import (
	"context"
	"log"
	"math"
	"time"

	"Capsule/internal/mailer"
	"Capsule/internal/repo"
	"Capsule/internal/schedule"
	"Capsule/internal/timeutil"

	"github.com/google/uuid"
)

// ReminderStore is the slice of the capsule repository the worker needs.
type ReminderStore interface {
	FindDueReminders(ctx context.Context, now time.Time) ([]repo.DueReminder, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time, nextSend *time.Time) error
}

// Reminders polls for due reminders on a fixed interval.
type Reminders struct {
	store    ReminderStore
	mail     mailer.Mailer
	baseURL  string
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewReminders returns a stopped worker; call Start to begin polling.
func NewReminders(store ReminderStore, mail mailer.Mailer, baseURL string, interval time.Duration) *Reminders {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reminders{
		store:    store,
		mail:     mail,
		baseURL:  baseURL,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop in its own goroutine.
func (w *Reminders) Start() {
	go w.run()
}

// Stop ends the loop and waits for the current tick to finish, bounded by ctx.
func (w *Reminders) Stop(ctx context.Context) error {
	close(w.stop)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Reminders) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), w.interval)
			w.RunOnce(ctx, time.Now().UTC())
			cancel()
		}
	}
}

// RunOnce processes every reminder due at now. Send failures are logged and
// the reminder is still marked sent, so a broken mailbox cannot wedge the
// loop into resending every tick.
func (w *Reminders) RunOnce(ctx context.Context, now time.Time) {
	due, err := w.store.FindDueReminders(ctx, now)
	if err != nil {
		log.Printf("reminder worker: find due: %v", err)
		return
	}
	for _, d := range due {
		if !schedule.IsDue(d.Reminder, now) {
			continue
		}
		w.dispatch(ctx, d, now)
	}
}

func (w *Reminders) dispatch(ctx context.Context, d repo.DueReminder, now time.Time) {
	subject, html, err := mailer.ReminderEmail(mailer.ReminderParams{
		UserName:     d.OwnerName,
		CapsuleTitle: d.CapsuleTitle,
		UnlockDate:   timeutil.FormatDate(d.UnlockDate),
		CapsuleURL:   w.baseURL + "/capsule/" + d.Reminder.CapsuleID.String(),
		DaysLeft:     daysLeft(d.UnlockDate, now),
	})
	if err != nil {
		log.Printf("reminder %s: render: %v", d.Reminder.ID, err)
		return
	}
	if err := w.mail.Send(ctx, d.OwnerEmail, subject, html); err != nil {
		log.Printf("reminder %s: send to %s: %v", d.Reminder.ID, d.OwnerEmail, err)
	}

	next := schedule.Advance(d.Reminder, d.UnlockDate)
	if err := w.store.MarkReminderSent(ctx, d.Reminder.ID, now, next); err != nil {
		log.Printf("reminder %s: mark sent: %v", d.Reminder.ID, err)
	}
}

func daysLeft(unlockDate, now time.Time) int {
	diff := unlockDate.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}
