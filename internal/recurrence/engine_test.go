package recurrence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

type fakeItemStore struct {
	items     map[string]*models.Item
	nextID    int
	creations []models.AccessScope
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: map[string]*models.Item{}}
}

func (f *fakeItemStore) put(item *models.Item) *models.Item {
	f.items[item.ID] = item
	return item
}

func (f *fakeItemStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) CreateItem(ctx context.Context, item *models.Item, scope models.AccessScope) error {
	f.nextID++
	item.ID = fmt.Sprintf("item-%d", f.nextID)
	item.IsHidden = scope.IsPrivate()
	f.creations = append(f.creations, scope)
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemStore) SetItemCompleted(ctx context.Context, itemID string, completed bool) error {
	item, ok := f.items[itemID]
	if !ok {
		return models.ErrNotFound
	}
	item.Completed = completed
	return nil
}

func (f *fakeItemStore) SetNextTodoID(ctx context.Context, itemID string, nextID *string) error {
	item, ok := f.items[itemID]
	if !ok {
		return models.ErrNotFound
	}
	item.NextTodoID = nextID
	return nil
}

func (f *fakeItemStore) SoftDeleteItem(ctx context.Context, itemID string) error {
	item, ok := f.items[itemID]
	if !ok {
		return models.ErrNotFound
	}
	item.Deleted = true
	return nil
}

type fakeReminderScheduler struct {
	scheduled []string
	cancelled []string
}

func (f *fakeReminderScheduler) Schedule(ctx context.Context, item *models.Item) {
	f.scheduled = append(f.scheduled, item.ID)
}

func (f *fakeReminderScheduler) Cancel(ctx context.Context, item *models.Item) {
	f.cancelled = append(f.cancelled, item.ID)
}

func weeklyItem() *models.Item {
	unit := models.RecurWeekly
	due := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	alert := 30
	return &models.Item{
		ID:            "item-weekly",
		ListID:        "list-1",
		Title:         "Water the plants",
		DueDate:       &due,
		CreatorAccID:  "acc-alice",
		AssignedTo:    models.AssignedUs,
		RecurringUnit: &unit,
		AlertMinutes:  &alert,
	}
}

func TestCompleteSpawnsSuccessor(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	store.put(item)

	successor, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if successor == nil {
		t.Fatal("expected a successor for a recurring item with a due date")
	}

	if !item.Completed {
		t.Error("item should be marked completed")
	}
	if item.NextTodoID == nil || *item.NextTodoID != successor.ID {
		t.Errorf("NextTodoID = %v, want link to %s", item.NextTodoID, successor.ID)
	}

	wantDue := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	if successor.DueDate == nil || !successor.DueDate.Equal(wantDue) {
		t.Errorf("successor due = %v, want %s", successor.DueDate, wantDue)
	}
	if successor.Completed {
		t.Error("successor must start incomplete")
	}
	if successor.ListID != item.ListID {
		t.Errorf("successor list = %q, want %q", successor.ListID, item.ListID)
	}
	if successor.AlertMinutes == nil || *successor.AlertMinutes != 30 {
		t.Errorf("successor alert = %v, want 30", successor.AlertMinutes)
	}

	if len(sched.cancelled) != 1 || sched.cancelled[0] != item.ID {
		t.Errorf("cancelled = %v, want only the completed item", sched.cancelled)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != successor.ID {
		t.Errorf("scheduled = %v, want only the successor", sched.scheduled)
	}
}

func TestCompleteHiddenItemKeepsPrivateScope(t *testing.T) {
	store := newFakeItemStore()
	engine := NewEngine(store, &fakeReminderScheduler{})

	item := weeklyItem()
	item.IsHidden = true
	store.put(item)

	successor, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !successor.IsHidden {
		t.Error("successor of a hidden item must stay hidden")
	}
	if len(store.creations) != 1 || !store.creations[0].IsPrivate() {
		t.Errorf("creation scope = %+v, want private", store.creations)
	}
	if store.creations[0].OwnerAccountID != item.CreatorAccID {
		t.Errorf("private scope owner = %q, want creator %q",
			store.creations[0].OwnerAccountID, item.CreatorAccID)
	}
}

func TestCompleteNonRecurring(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	item.RecurringUnit = nil
	store.put(item)

	successor, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if successor != nil {
		t.Fatalf("non-recurring item spawned successor %+v", successor)
	}
	if !item.Completed {
		t.Error("item should still be marked completed")
	}
	if len(sched.cancelled) != 1 {
		t.Errorf("reminders should be cancelled on completion, got %v", sched.cancelled)
	}
	if len(sched.scheduled) != 0 {
		t.Errorf("nothing should be scheduled, got %v", sched.scheduled)
	}
}

func TestCompleteRecurringWithoutDueDate(t *testing.T) {
	store := newFakeItemStore()
	engine := NewEngine(store, &fakeReminderScheduler{})

	item := weeklyItem()
	item.DueDate = nil
	store.put(item)

	successor, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if successor != nil {
		t.Fatal("a recurring item without a due date has no next occurrence")
	}
}

// Completing an item the partner's device already completed must not spawn
// a second successor; transitions tolerate re-entry on stale views.
func TestCompleteAlreadyCompletedIsNoOp(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	store.put(item)

	first, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// The second device re-reads the item and sees it completed.
	stale, err := store.GetItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	second, err := engine.Complete(context.Background(), stale, "couple-1")
	if err != nil {
		t.Fatalf("re-entrant Complete: %v", err)
	}
	if second != nil {
		t.Fatalf("re-entry spawned a second successor %s", second.ID)
	}

	live := 0
	for _, stored := range store.items {
		if !stored.Deleted && !stored.Completed {
			live++
		}
	}
	if live != 1 {
		t.Errorf("live successors after re-entry = %d, want 1", live)
	}
	if stored := store.items[item.ID]; stored.NextTodoID == nil || *stored.NextTodoID != first.ID {
		t.Errorf("NextTodoID = %v, want the first successor %s", stored.NextTodoID, first.ID)
	}

	// Undo still retires the one successor that exists.
	if err := engine.Undo(context.Background(), stale); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if stored := store.items[first.ID]; !stored.Deleted {
		t.Error("first successor should be retired by undo")
	}
}

func TestUndoAlreadyIncompleteIsNoOp(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	store.put(item)

	if err := engine.Undo(context.Background(), item); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(sched.scheduled) != 0 || len(sched.cancelled) != 0 {
		t.Errorf("no-op undo touched reminders: scheduled %v, cancelled %v",
			sched.scheduled, sched.cancelled)
	}
}

func TestUndoRetiresSuccessor(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	store.put(item)

	successor, err := engine.Complete(context.Background(), item, "couple-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if err := engine.Undo(context.Background(), item); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	if item.Completed {
		t.Error("item should be incomplete after undo")
	}
	if item.NextTodoID != nil {
		t.Errorf("NextTodoID = %v, want nil after undo", item.NextTodoID)
	}

	stored := store.items[successor.ID]
	if stored == nil || !stored.Deleted {
		t.Error("successor should be soft-deleted, not removed")
	}
	if stored != nil && store.items[item.ID].Deleted {
		t.Error("the undone item itself must survive")
	}

	// Cancel on completion, cancel on the retired successor, then the item
	// is re-armed.
	if len(sched.cancelled) != 2 {
		t.Errorf("cancelled = %v, want item then successor", sched.cancelled)
	}
	last := sched.scheduled[len(sched.scheduled)-1]
	if last != item.ID {
		t.Errorf("last scheduled = %q, want the undone item %q", last, item.ID)
	}
}

func TestUndoToleratesMissingSuccessor(t *testing.T) {
	store := newFakeItemStore()
	engine := NewEngine(store, &fakeReminderScheduler{})

	item := weeklyItem()
	gone := "item-vanished"
	item.Completed = true
	item.NextTodoID = &gone
	store.put(item)

	if err := engine.Undo(context.Background(), item); err != nil {
		t.Fatalf("Undo with missing successor: %v", err)
	}
	if item.Completed || item.NextTodoID != nil {
		t.Error("undo should still complete when the successor is gone")
	}
}

func TestUndoToleratesDeletedSuccessor(t *testing.T) {
	store := newFakeItemStore()
	sched := &fakeReminderScheduler{}
	engine := NewEngine(store, sched)

	item := weeklyItem()
	store.put(item)
	successorID := "item-succ"
	store.put(&models.Item{ID: successorID, Deleted: true})
	item.Completed = true
	item.NextTodoID = &successorID

	if err := engine.Undo(context.Background(), item); err != nil {
		t.Fatalf("Undo with deleted successor: %v", err)
	}
	for _, id := range sched.cancelled {
		if id == successorID {
			t.Error("already deleted successor should not be cancelled again")
		}
	}
}

func TestCompleteUndoRoundTrip(t *testing.T) {
	store := newFakeItemStore()
	engine := NewEngine(store, &fakeReminderScheduler{})

	item := weeklyItem()
	originalDue := *item.DueDate
	store.put(item)

	if _, err := engine.Complete(context.Background(), item, "couple-1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := engine.Undo(context.Background(), item); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	if item.Completed {
		t.Error("round trip should end incomplete")
	}
	if item.NextTodoID != nil {
		t.Error("round trip should end unlinked")
	}
	if !item.DueDate.Equal(originalDue) {
		t.Errorf("due date changed across round trip: %s", item.DueDate)
	}

	// Only the retired successor remains as a tombstone.
	live := 0
	for _, stored := range store.items {
		if !stored.Deleted {
			live++
		}
	}
	if live != 1 {
		t.Errorf("live items after round trip = %d, want 1", live)
	}
}
