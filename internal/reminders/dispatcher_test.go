package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

type fakeDispatchStore struct {
	due            []DueReminder
	deleted        []string
	clearedHandles []string
	notifications  []models.Notification
}

func (f *fakeDispatchStore) DueReminders(ctx context.Context, now time.Time, limit int) ([]DueReminder, error) {
	if limit < len(f.due) {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeDispatchStore) DeleteReminder(ctx context.Context, reminderID string) error {
	f.deleted = append(f.deleted, reminderID)
	return nil
}

func (f *fakeDispatchStore) ClearItemReminderHandle(ctx context.Context, itemID, handle string) error {
	f.clearedHandles = append(f.clearedHandles, handle)
	return nil
}

func (f *fakeDispatchStore) CoupleAccountIDs(ctx context.Context, coupleID string) ([]string, error) {
	return []string{"acc-alice", "acc-bob"}, nil
}

func (f *fakeDispatchStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

type fakePusher struct {
	pushes []string
}

func (f *fakePusher) BroadcastNotification(accountID string, data interface{}) {
	f.pushes = append(f.pushes, accountID)
}

func dueReminder(id string) DueReminder {
	return DueReminder{
		Reminder: models.Reminder{
			ID:       id,
			ItemID:   "item-1",
			CoupleID: "couple-1",
			Title:    "Water the plants",
		},
		ItemCreatorAccID: "acc-alice",
	}
}

func TestDispatchDueNotifiesBothPartners(t *testing.T) {
	store := &fakeDispatchStore{due: []DueReminder{dueReminder("rem-1")}}
	pusher := &fakePusher{}
	d := NewDispatcher(store, pusher, time.Second, 10)

	d.DispatchDue(context.Background(), time.Now())

	if len(store.notifications) != 2 {
		t.Fatalf("notifications = %d, want one per partner", len(store.notifications))
	}
	if len(pusher.pushes) != 2 {
		t.Fatalf("pushes = %d, want one per partner", len(pusher.pushes))
	}
	for _, n := range store.notifications {
		if n.Type != models.NotifTypeReminder {
			t.Errorf("notification type = %q, want %q", n.Type, models.NotifTypeReminder)
		}
		if n.Message != "Water the plants" {
			t.Errorf("notification message = %q", n.Message)
		}
	}

	if len(store.deleted) != 1 || store.deleted[0] != "rem-1" {
		t.Errorf("deleted = %v, want the fired reminder", store.deleted)
	}
	if len(store.clearedHandles) != 1 || store.clearedHandles[0] != "rem-1" {
		t.Errorf("cleared handles = %v, want the fired handle", store.clearedHandles)
	}
}

func TestDispatchDueHiddenItemNotifiesCreatorOnly(t *testing.T) {
	r := dueReminder("rem-1")
	r.ItemHidden = true
	store := &fakeDispatchStore{due: []DueReminder{r}}
	pusher := &fakePusher{}
	d := NewDispatcher(store, pusher, time.Second, 10)

	d.DispatchDue(context.Background(), time.Now())

	if len(store.notifications) != 1 {
		t.Fatalf("notifications = %d, want creator only", len(store.notifications))
	}
	if store.notifications[0].AccountID != "acc-alice" {
		t.Errorf("recipient = %q, want the creator", store.notifications[0].AccountID)
	}
}

func TestDispatchDueSkipsDeletedItem(t *testing.T) {
	r := dueReminder("rem-1")
	r.ItemDeleted = true
	store := &fakeDispatchStore{due: []DueReminder{r}}
	pusher := &fakePusher{}
	d := NewDispatcher(store, pusher, time.Second, 10)

	d.DispatchDue(context.Background(), time.Now())

	if len(store.notifications) != 0 {
		t.Errorf("notifications = %d, want none for a deleted item", len(store.notifications))
	}
	// The stale reminder is still retired so it never fires again.
	if len(store.deleted) != 1 {
		t.Errorf("deleted = %v, want the stale reminder retired", store.deleted)
	}
}

func TestDispatchDueRespectsBatchLimit(t *testing.T) {
	store := &fakeDispatchStore{due: []DueReminder{
		dueReminder("rem-1"), dueReminder("rem-2"), dueReminder("rem-3"),
	}}
	d := NewDispatcher(store, &fakePusher{}, time.Second, 2)

	d.DispatchDue(context.Background(), time.Now())

	if len(store.deleted) != 2 {
		t.Errorf("retired = %d reminders, want the batch limit of 2", len(store.deleted))
	}
}
