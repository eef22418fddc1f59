// Package reminders schedules, cancels and delivers due-date reminders for
// collaborative items. Scheduling is deliberately best-effort: a reminder
// that cannot be registered must never block the domain state change that
// asked for it.
package reminders

import (
	"context"
	"log/slog"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// Sink registers and revokes reminder triggers. ScheduleAt returns an
// opaque handle used to cancel the trigger later.
type Sink interface {
	ScheduleAt(ctx context.Context, item *models.Item, coupleID string, triggerAt time.Time) (handle string, err error)
	Cancel(ctx context.Context, handle string) error
}

// HandleStore persists the handles of currently scheduled reminders on the
// item that owns them.
type HandleStore interface {
	SetItemReminders(ctx context.Context, itemID string, first, second *string) error
	ItemCoupleID(ctx context.Context, itemID string) (string, error)
}

// Scheduler keeps an item's scheduled reminders in lock-step with its due
// date and alert offsets. All sink and persistence failures are logged,
// counted and swallowed; both Schedule and Cancel always return.
type Scheduler struct {
	sink  Sink
	store HandleStore
	now   func() time.Time
}

func NewScheduler(sink Sink, store HandleStore) *Scheduler {
	return &Scheduler{sink: sink, store: store, now: time.Now}
}

// WithClock overrides the scheduler's time source.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Schedule registers one trigger per set alert offset at dueDate - offset.
// An offset of zero fires exactly at the due date. Items without a due
// date, deleted items and triggers already in the past are skipped. Any
// previously stored handles are cancelled first, so repeated edits never
// leak stale reminders.
func (s *Scheduler) Schedule(ctx context.Context, item *models.Item) {
	s.cancelStored(ctx, item)

	if item.DueDate == nil || item.Deleted {
		s.persist(ctx, item)
		return
	}

	coupleID, err := s.store.ItemCoupleID(ctx, item.ID)
	if err != nil {
		slog.Warn("could not resolve couple for reminder", "item_id", item.ID, "error", err)
		failedTotal.WithLabelValues("schedule").Inc()
		s.persist(ctx, item)
		return
	}

	now := s.now()
	item.ReminderID = s.scheduleOffset(ctx, item, coupleID, item.AlertMinutes, now)
	item.SecondReminderID = s.scheduleOffset(ctx, item, coupleID, item.SecondAlertMinutes, now)
	s.persist(ctx, item)
}

// Cancel revokes any stored handles and clears them. Safe to call on an
// item with nothing scheduled.
func (s *Scheduler) Cancel(ctx context.Context, item *models.Item) {
	s.cancelStored(ctx, item)
	s.persist(ctx, item)
}

func (s *Scheduler) scheduleOffset(ctx context.Context, item *models.Item, coupleID string, offsetMinutes *int, now time.Time) *string {
	if offsetMinutes == nil {
		return nil
	}

	triggerAt := item.DueDate.Add(-time.Duration(*offsetMinutes) * time.Minute)
	if !triggerAt.After(now) {
		return nil
	}

	handle, err := s.sink.ScheduleAt(ctx, item, coupleID, triggerAt)
	if err != nil {
		slog.Warn("failed to schedule reminder",
			"item_id", item.ID, "trigger_at", triggerAt, "error", err)
		failedTotal.WithLabelValues("schedule").Inc()
		return nil
	}

	scheduledTotal.Inc()
	return &handle
}

func (s *Scheduler) cancelStored(ctx context.Context, item *models.Item) {
	for _, handle := range []*string{item.ReminderID, item.SecondReminderID} {
		if handle == nil {
			continue
		}
		if err := s.sink.Cancel(ctx, *handle); err != nil {
			slog.Warn("failed to cancel reminder", "handle", *handle, "error", err)
			failedTotal.WithLabelValues("cancel").Inc()
			continue
		}
		cancelledTotal.Inc()
	}
	item.ReminderID = nil
	item.SecondReminderID = nil
}

func (s *Scheduler) persist(ctx context.Context, item *models.Item) {
	if err := s.store.SetItemReminders(ctx, item.ID, item.ReminderID, item.SecondReminderID); err != nil {
		slog.Warn("failed to persist reminder handles", "item_id", item.ID, "error", err)
		failedTotal.WithLabelValues("persist").Inc()
	}
}
