package reminders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

type fakeSink struct {
	next    int
	live    map[string]time.Time
	failing bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{live: map[string]time.Time{}}
}

func (f *fakeSink) ScheduleAt(ctx context.Context, item *models.Item, coupleID string, triggerAt time.Time) (string, error) {
	if f.failing {
		return "", errors.New("sink unavailable")
	}
	f.next++
	handle := fmt.Sprintf("rem-%d", f.next)
	f.live[handle] = triggerAt
	return handle, nil
}

func (f *fakeSink) Cancel(ctx context.Context, handle string) error {
	if f.failing {
		return errors.New("sink unavailable")
	}
	delete(f.live, handle)
	return nil
}

type fakeHandleStore struct {
	first, second *string
	persistErr    error
	coupleErr     error
}

func (f *fakeHandleStore) SetItemReminders(ctx context.Context, itemID string, first, second *string) error {
	if f.persistErr != nil {
		return f.persistErr
	}
	f.first, f.second = first, second
	return nil
}

func (f *fakeHandleStore) ItemCoupleID(ctx context.Context, itemID string) (string, error) {
	if f.coupleErr != nil {
		return "", f.coupleErr
	}
	return "couple-1", nil
}

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func itemDueAt(due time.Time, alert *int, second *int) *models.Item {
	return &models.Item{
		ID:                 "item-1",
		Title:              "Pick up flowers",
		DueDate:            &due,
		AlertMinutes:       alert,
		SecondAlertMinutes: second,
	}
}

func intp(v int) *int { return &v }

func TestScheduleRegistersTriggers(t *testing.T) {
	sink := newFakeSink()
	store := &fakeHandleStore{}
	s := NewScheduler(sink, store).WithClock(clock)

	due := testNow.Add(24 * time.Hour)
	item := itemDueAt(due, intp(30), intp(0))

	s.Schedule(context.Background(), item)

	if item.ReminderID == nil || item.SecondReminderID == nil {
		t.Fatalf("handles = (%v, %v), want both set", item.ReminderID, item.SecondReminderID)
	}
	if len(sink.live) != 2 {
		t.Fatalf("live triggers = %d, want 2", len(sink.live))
	}

	if got := sink.live[*item.ReminderID]; !got.Equal(due.Add(-30 * time.Minute)) {
		t.Errorf("first trigger at %s, want 30m before due", got)
	}
	// Offset zero fires exactly at the due date.
	if got := sink.live[*item.SecondReminderID]; !got.Equal(due) {
		t.Errorf("second trigger at %s, want the due date", got)
	}

	if store.first == nil || store.second == nil {
		t.Error("handles were not persisted")
	}
}

func TestScheduleWeeklySuccessorTrigger(t *testing.T) {
	sink := newFakeSink()
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(func() time.Time {
		return time.Date(2024, time.June, 3, 9, 5, 0, 0, time.UTC)
	})

	due := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	item := itemDueAt(due, intp(30), nil)

	s.Schedule(context.Background(), item)

	if item.ReminderID == nil {
		t.Fatal("expected a scheduled trigger")
	}
	want := time.Date(2024, time.June, 10, 8, 30, 0, 0, time.UTC)
	if got := sink.live[*item.ReminderID]; !got.Equal(want) {
		t.Errorf("trigger at %s, want %s", got, want)
	}
}

func TestScheduleIsIdempotent(t *testing.T) {
	sink := newFakeSink()
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)

	s.Schedule(context.Background(), item)
	firstHandle := *item.ReminderID
	s.Schedule(context.Background(), item)

	if len(sink.live) != 1 {
		t.Fatalf("live triggers after reschedule = %d, want 1", len(sink.live))
	}
	if _, stale := sink.live[firstHandle]; stale {
		t.Error("previous trigger should have been cancelled")
	}
}

func TestScheduleSkipsPastTriggers(t *testing.T) {
	sink := newFakeSink()
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(clock)

	// Due in 20 minutes: the 30 minute alert is already in the past, the
	// 5 minute one is not.
	item := itemDueAt(testNow.Add(20*time.Minute), intp(30), intp(5))

	s.Schedule(context.Background(), item)

	if item.ReminderID != nil {
		t.Error("past trigger should not be scheduled")
	}
	if item.SecondReminderID == nil {
		t.Error("future trigger should be scheduled")
	}
	if len(sink.live) != 1 {
		t.Errorf("live triggers = %d, want 1", len(sink.live))
	}
}

func TestScheduleWithoutDueDate(t *testing.T) {
	sink := newFakeSink()
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(clock)

	item := &models.Item{ID: "item-1", AlertMinutes: intp(30)}
	s.Schedule(context.Background(), item)

	if len(sink.live) != 0 {
		t.Errorf("live triggers = %d, want 0 without a due date", len(sink.live))
	}
}

func TestScheduleDeletedItem(t *testing.T) {
	sink := newFakeSink()
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)
	item.Deleted = true

	s.Schedule(context.Background(), item)

	if len(sink.live) != 0 {
		t.Errorf("live triggers = %d, want 0 for a deleted item", len(sink.live))
	}
}

func TestCancelClearsHandles(t *testing.T) {
	sink := newFakeSink()
	store := &fakeHandleStore{}
	s := NewScheduler(sink, store).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), intp(0))
	s.Schedule(context.Background(), item)
	s.Cancel(context.Background(), item)

	if item.ReminderID != nil || item.SecondReminderID != nil {
		t.Error("handles should be cleared after cancel")
	}
	if len(sink.live) != 0 {
		t.Errorf("live triggers = %d, want 0 after cancel", len(sink.live))
	}
	if store.first != nil || store.second != nil {
		t.Error("cleared handles were not persisted")
	}
}

func TestCancelWithNothingScheduled(t *testing.T) {
	s := NewScheduler(newFakeSink(), &fakeHandleStore{}).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)
	// Must not panic or error; there is nothing to revoke.
	s.Cancel(context.Background(), item)
}

func TestScheduleSwallowsSinkFailure(t *testing.T) {
	sink := newFakeSink()
	sink.failing = true
	s := NewScheduler(sink, &fakeHandleStore{}).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)

	// The failure is logged and counted, never surfaced.
	s.Schedule(context.Background(), item)

	if item.ReminderID != nil {
		t.Error("failed schedule must leave no handle behind")
	}
}

func TestScheduleSwallowsStoreFailure(t *testing.T) {
	sink := newFakeSink()
	store := &fakeHandleStore{coupleErr: errors.New("db down")}
	s := NewScheduler(sink, store).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)
	s.Schedule(context.Background(), item)

	if len(sink.live) != 0 {
		t.Errorf("live triggers = %d, want 0 when the couple lookup fails", len(sink.live))
	}
}

func TestScheduleSwallowsPersistFailure(t *testing.T) {
	sink := newFakeSink()
	store := &fakeHandleStore{persistErr: errors.New("db down")}
	s := NewScheduler(sink, store).WithClock(clock)

	item := itemDueAt(testNow.Add(time.Hour), intp(10), nil)
	s.Schedule(context.Background(), item)

	// The trigger itself was registered; only the handle write failed.
	if len(sink.live) != 1 {
		t.Errorf("live triggers = %d, want 1", len(sink.live))
	}
}
