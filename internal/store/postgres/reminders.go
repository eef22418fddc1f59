package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/reminders"
)

// The postgres store doubles as the reminder sink: a scheduled trigger is a
// row in the reminders table, its primary key is the opaque handle.
var _ reminders.Sink = (*Store)(nil)

func (s *Store) ScheduleAt(ctx context.Context, item *models.Item, coupleID string, triggerAt time.Time) (string, error) {
	r := &models.Reminder{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		CoupleID:  coupleID,
		Title:     item.Title,
		TriggerAt: triggerAt,
	}
	if err := s.InsertReminder(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *Store) Cancel(ctx context.Context, handle string) error {
	return s.DeleteReminder(ctx, handle)
}

func (s *Store) InsertReminder(ctx context.Context, r *models.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO reminders (id, item_id, couple_id, title, trigger_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		r.ID, r.ItemID, r.CoupleID, r.Title, r.TriggerAt).Scan(&r.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

// DeleteReminder removes a pending reminder. Deleting a handle that was
// already fired or cancelled is a no-op, which keeps cancellation
// idempotent.
func (s *Store) DeleteReminder(ctx context.Context, reminderID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (s *Store) DueReminders(ctx context.Context, now time.Time, limit int) ([]reminders.DueReminder, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.item_id, r.couple_id, r.title, r.trigger_at, r.created_at,
		 i.creator_acc_id, i.is_hidden, (i.deleted OR l.deleted)
		 FROM reminders r
		 JOIN items i ON i.id = r.item_id
		 JOIN lists l ON l.id = i.list_id
		 WHERE r.trigger_at <= $1
		 ORDER BY r.trigger_at
		 LIMIT $2`,
		now, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch due reminders: %w", err)
	}
	defer rows.Close()

	var due []reminders.DueReminder
	for rows.Next() {
		var r reminders.DueReminder
		err := rows.Scan(&r.ID, &r.ItemID, &r.CoupleID, &r.Title, &r.TriggerAt,
			&r.CreatedAt, &r.ItemCreatorAccID, &r.ItemHidden, &r.ItemDeleted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		due = append(due, r)
	}
	return due, rows.Err()
}

// ClearItemReminderHandle nulls whichever of the item's stored handles
// matches, after the reminder fired.
func (s *Store) ClearItemReminderHandle(ctx context.Context, itemID, handle string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE items
		 SET reminder_id = CASE WHEN reminder_id = $1 THEN NULL ELSE reminder_id END,
		     second_reminder_id = CASE WHEN second_reminder_id = $1 THEN NULL ELSE second_reminder_id END
		 WHERE id = $2`,
		handle, itemID)
	if err != nil {
		return fmt.Errorf("failed to clear reminder handle: %w", err)
	}
	return nil
}
