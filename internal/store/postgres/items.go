package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

const itemColumns = `id, list_id, title, notes, completed, due_date,
	 creator_acc_id, assigned_to, is_hidden, deleted, recurring_unit,
	 alert_minutes, second_alert_minutes, reminder_id, second_reminder_id,
	 next_todo_id, position, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID, &item.ListID, &item.Title, &item.Notes, &item.Completed,
		&item.DueDate, &item.CreatorAccID, &item.AssignedTo, &item.IsHidden,
		&item.Deleted, &item.RecurringUnit, &item.AlertMinutes,
		&item.SecondAlertMinutes, &item.ReminderID, &item.SecondReminderID,
		&item.NextTodoID, &item.Position, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates the item under the given access scope and appends it
// to the list's ordered collection. The hidden flag is derived from the
// scope so the pairing invariant holds from the first write.
func (s *Store) CreateItem(ctx context.Context, item *models.Item, scope models.AccessScope) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.IsHidden = scope.IsPrivate()

	err := s.db.QueryRow(ctx,
		`INSERT INTO items (id, list_id, title, notes, due_date, creator_acc_id,
		                    assigned_to, is_hidden, recurring_unit,
		                    alert_minutes, second_alert_minutes, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		         (SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE list_id = $2))
		 RETURNING position, created_at, updated_at`,
		item.ID, item.ListID, item.Title, item.Notes, item.DueDate,
		item.CreatorAccID, item.AssignedTo, item.IsHidden, item.RecurringUnit,
		item.AlertMinutes, item.SecondAlertMinutes).Scan(
		&item.Position, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetItem resolves an item without viewer filtering, for internal
// transitions that already hold a reference to it.
func (s *Store) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// GetItemForViewer resolves an item subject to the viewer's access scope:
// hidden items resolve only for their creator.
func (s *Store) GetItemForViewer(ctx context.Context, itemID, viewerAccID string) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE id = $1 AND deleted = false
		   AND (is_hidden = false OR creator_acc_id = $2)`,
		itemID, viewerAccID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns the list's non-deleted items visible to the viewer in
// collection order.
func (s *Store) ListItems(ctx context.Context, listID, viewerAccID string) ([]models.Item, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE list_id = $1 AND deleted = false
		   AND (is_hidden = false OR creator_acc_id = $2)
		 ORDER BY position`,
		listID, viewerAccID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem assigns the item's mutable fields. Completion, reminder
// handles, the successor link, the hidden flag and the scope all have
// dedicated setters and are not touched here.
func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	result, err := s.db.Exec(ctx,
		`UPDATE items
		 SET title = $1, notes = $2, due_date = $3, assigned_to = $4,
		     recurring_unit = $5, alert_minutes = $6, second_alert_minutes = $7,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8 AND deleted = false`,
		item.Title, item.Notes, item.DueDate, item.AssignedTo,
		item.RecurringUnit, item.AlertMinutes, item.SecondAlertMinutes, item.ID)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SetItemCompleted(ctx context.Context, itemID string, completed bool) error {
	result, err := s.db.Exec(ctx,
		`UPDATE items SET completed = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND deleted = false`,
		completed, itemID)

	if err != nil {
		return fmt.Errorf("failed to set item completed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SetNextTodoID(ctx context.Context, itemID string, nextID *string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE items SET next_todo_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		nextID, itemID)
	if err != nil {
		return fmt.Errorf("failed to set successor link: %w", err)
	}
	return nil
}

func (s *Store) SetItemReminders(ctx context.Context, itemID string, first, second *string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE items SET reminder_id = $1, second_reminder_id = $2 WHERE id = $3`,
		first, second, itemID)
	if err != nil {
		return fmt.Errorf("failed to persist reminder handles: %w", err)
	}
	return nil
}

func (s *Store) ItemCoupleID(ctx context.Context, itemID string) (string, error) {
	var coupleID string
	err := s.db.QueryRow(ctx,
		`SELECT l.couple_id FROM items i JOIN lists l ON l.id = i.list_id WHERE i.id = $1`,
		itemID).Scan(&coupleID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve item couple: %w", err)
	}
	return coupleID, nil
}

func (s *Store) SoftDeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE items SET deleted = true, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND deleted = false`,
		itemID)

	if err != nil {
		return fmt.Errorf("failed to soft-delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}
