package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

func (s *Store) InsertNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO notifications (id, account_id, type, title, message, data)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		n.ID, n.AccountID, n.Type, n.Title, n.Message, n.Data).Scan(&n.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, accountID string, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT id, account_id, type, title, message, data, is_read, created_at
		 FROM notifications
		 WHERE account_id = $1`
	if unreadOnly {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := s.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.AccountID, &n.Type, &n.Title, &n.Message,
			&n.Data, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Store) UnreadCount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND is_read = false",
		accountID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, notificationID, accountID string, read bool) error {
	result, err := s.db.Exec(ctx,
		"UPDATE notifications SET is_read = $1 WHERE id = $2 AND account_id = $3",
		read, notificationID, accountID)

	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, accountID string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE account_id = $1 AND is_read = false",
		accountID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
