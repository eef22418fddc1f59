package reminders

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// DueReminder is a pending reminder joined with the state of the item that
// scheduled it, as seen at delivery time.
type DueReminder struct {
	models.Reminder
	ItemCreatorAccID string
	ItemHidden       bool
	ItemDeleted      bool
}

// DispatchStore is the slice of storage the dispatcher works against.
type DispatchStore interface {
	DueReminders(ctx context.Context, now time.Time, limit int) ([]DueReminder, error)
	DeleteReminder(ctx context.Context, reminderID string) error
	ClearItemReminderHandle(ctx context.Context, itemID, handle string) error
	CoupleAccountIDs(ctx context.Context, coupleID string) ([]string, error)
	InsertNotification(ctx context.Context, n *models.Notification) error
}

// Pusher delivers a fired reminder to an account's connected devices.
type Pusher interface {
	BroadcastNotification(accountID string, data interface{})
}

// Dispatcher polls for due reminders and delivers each one as an in-app
// notification plus a websocket push, then retires the reminder row.
type Dispatcher struct {
	store    DispatchStore
	pusher   Pusher
	interval time.Duration
	batch    int
}

func NewDispatcher(store DispatchStore, pusher Pusher, interval time.Duration, batch int) *Dispatcher {
	return &Dispatcher{store: store, pusher: pusher, interval: interval, batch: batch}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchDue(ctx, time.Now())
		}
	}
}

// DispatchDue delivers every reminder due at or before now. Failures are
// logged and the affected reminder is retried on the next poll.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) {
	due, err := d.store.DueReminders(ctx, now, d.batch)
	if err != nil {
		slog.Error("failed to load due reminders", "error", err)
		return
	}

	for _, reminder := range due {
		if err := d.deliver(ctx, reminder); err != nil {
			slog.Warn("failed to deliver reminder", "reminder_id", reminder.ID, "error", err)
			continue
		}

		if err := d.store.DeleteReminder(ctx, reminder.ID); err != nil {
			slog.Warn("failed to retire reminder", "reminder_id", reminder.ID, "error", err)
			continue
		}
		if err := d.store.ClearItemReminderHandle(ctx, reminder.ItemID, reminder.ID); err != nil {
			slog.Warn("failed to clear reminder handle", "reminder_id", reminder.ID, "error", err)
		}
		firedTotal.Inc()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, reminder DueReminder) error {
	// An item deleted after scheduling must not ping anyone.
	if reminder.ItemDeleted {
		return nil
	}

	recipients, err := d.recipients(ctx, reminder)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"item_id":     reminder.ItemID,
		"reminder_id": reminder.ID,
	})
	data := string(payload)

	for _, accountID := range recipients {
		notification := &models.Notification{
			AccountID: accountID,
			Type:      models.NotifTypeReminder,
			Title:     "Reminder",
			Message:   reminder.Title,
			Data:      &data,
		}
		if err := d.store.InsertNotification(ctx, notification); err != nil {
			return err
		}
		d.pusher.BroadcastNotification(accountID, notification)
	}
	return nil
}

// recipients returns both partners for shared items, and only the creator
// for hidden ones.
func (d *Dispatcher) recipients(ctx context.Context, reminder DueReminder) ([]string, error) {
	if reminder.ItemHidden {
		return []string{reminder.ItemCreatorAccID}, nil
	}
	return d.store.CoupleAccountIDs(ctx, reminder.CoupleID)
}
