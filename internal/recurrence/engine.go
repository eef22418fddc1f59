package recurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/visibility"
)

// ItemStore is the slice of the storage collaborator the engine mutates
// item state through.
type ItemStore interface {
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item, scope models.AccessScope) error
	SetItemCompleted(ctx context.Context, itemID string, completed bool) error
	SetNextTodoID(ctx context.Context, itemID string, nextID *string) error
	SoftDeleteItem(ctx context.Context, itemID string) error
}

// ReminderScheduler is the reminder side of a transition. Implementations
// must swallow scheduling failures; the engine never sees them.
type ReminderScheduler interface {
	Schedule(ctx context.Context, item *models.Item)
	Cancel(ctx context.Context, item *models.Item)
}

// Engine drives the completion state machine of a single item. Transitions
// are not atomic across devices; every step tolerates the partner having
// already mutated the same item.
type Engine struct {
	store     ItemStore
	reminders ReminderScheduler
}

func NewEngine(store ItemStore, reminders ReminderScheduler) *Engine {
	return &Engine{store: store, reminders: reminders}
}

// Complete marks the item done and, for a recurring item with a due date,
// spawns its successor: a clone with the next computed due date, linked via
// NextTodoID and appended to the same list. The successor's reminders are
// scheduled and the completed item's own reminders are cancelled.
//
// Returns the successor, or nil when none was created. The passed item is
// updated in place.
//
// An item that is already completed was completed by the partner's device
// first; the transition is a no-op so re-entry never spawns a second
// successor.
func (e *Engine) Complete(ctx context.Context, item *models.Item, coupleID string) (*models.Item, error) {
	if item.Completed {
		return nil, nil
	}

	if err := e.store.SetItemCompleted(ctx, item.ID, true); err != nil {
		return nil, fmt.Errorf("failed to mark item completed: %w", err)
	}
	item.Completed = true

	// A done item must not ping anyone, recurring or not.
	e.reminders.Cancel(ctx, item)

	if item.RecurringUnit == nil || item.DueDate == nil {
		return nil, nil
	}

	nextDue := NextDue(*item.RecurringUnit, *item.DueDate)
	successor := &models.Item{
		ListID:             item.ListID,
		Title:              item.Title,
		Notes:              item.Notes,
		Completed:          false,
		DueDate:            &nextDue,
		CreatorAccID:       item.CreatorAccID,
		AssignedTo:         item.AssignedTo,
		IsHidden:           item.IsHidden,
		RecurringUnit:      item.RecurringUnit,
		AlertMinutes:       item.AlertMinutes,
		SecondAlertMinutes: item.SecondAlertMinutes,
	}

	scope := visibility.ScopeForCreation(item.IsHidden, coupleID, item.CreatorAccID)
	if err := e.store.CreateItem(ctx, successor, scope); err != nil {
		return nil, fmt.Errorf("failed to create successor: %w", err)
	}

	if err := e.store.SetNextTodoID(ctx, item.ID, &successor.ID); err != nil {
		return nil, fmt.Errorf("failed to link successor: %w", err)
	}
	item.NextTodoID = &successor.ID

	e.reminders.Schedule(ctx, successor)
	return successor, nil
}

// Undo reverses a completion. If a successor was spawned it is cancelled
// and soft-deleted; the item itself goes back to incomplete and its own
// reminders are re-armed. A successor that is already gone or was deleted
// by the partner in the meantime counts as "no successor to undo". An item
// that is already incomplete is a no-op, mirroring Complete.
func (e *Engine) Undo(ctx context.Context, item *models.Item) error {
	if !item.Completed {
		return nil
	}

	if item.NextTodoID != nil {
		successor, err := e.store.GetItem(ctx, *item.NextTodoID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			// Concurrent edit already removed it; nothing to retire.
		case err != nil:
			return fmt.Errorf("failed to load successor: %w", err)
		case !successor.Deleted:
			e.reminders.Cancel(ctx, successor)
			if err := e.store.SoftDeleteItem(ctx, successor.ID); err != nil {
				return fmt.Errorf("failed to retire successor: %w", err)
			}
		}

		if err := e.store.SetNextTodoID(ctx, item.ID, nil); err != nil {
			return fmt.Errorf("failed to unlink successor: %w", err)
		}
		item.NextTodoID = nil
	}

	if err := e.store.SetItemCompleted(ctx, item.ID, false); err != nil {
		return fmt.Errorf("failed to mark item incomplete: %w", err)
	}
	item.Completed = false

	// Completion cancelled the item's reminders; arm them again.
	e.reminders.Schedule(ctx, item)
	return nil
}
