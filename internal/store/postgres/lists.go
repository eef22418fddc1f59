package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// CreateList creates the list under the given access scope and appends it
// to the couple's ordered collection. The hidden flag is derived from the
// scope so the pairing invariant holds from the first write.
func (s *Store) CreateList(ctx context.Context, list *models.List, scope models.AccessScope) error {
	if list.ID == "" {
		list.ID = uuid.NewString()
	}
	list.CoupleID = scope.CoupleID
	list.IsHidden = scope.IsPrivate()

	err := s.db.QueryRow(ctx,
		`INSERT INTO lists (id, couple_id, kind, title, emoji, background_color,
		                    creator_acc_id, assigned_to, is_hidden, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		         (SELECT COALESCE(MAX(position) + 1, 0) FROM lists WHERE couple_id = $2))
		 RETURNING position, created_at, updated_at`,
		list.ID, list.CoupleID, list.Kind, list.Title, list.Emoji, list.BackgroundColor,
		list.CreatorAccID, list.AssignedTo, list.IsHidden).Scan(
		&list.Position, &list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// GetList returns the list if the viewer may see it: hidden lists resolve
// only for their creator.
func (s *Store) GetList(ctx context.Context, listID, viewerAccID string) (*models.List, error) {
	var list models.List
	err := s.db.QueryRow(ctx,
		`SELECT l.id, l.couple_id, l.kind, l.title, l.emoji, l.background_color,
		 l.creator_acc_id, l.assigned_to, l.is_hidden, l.deleted, l.position,
		 l.created_at, l.updated_at,
		 COUNT(i.id) FILTER (WHERE i.deleted = false) AS item_count,
		 COUNT(i.id) FILTER (WHERE i.deleted = false AND i.completed = true) AS completed_count
		 FROM lists l
		 LEFT JOIN items i ON i.list_id = l.id
		 WHERE l.id = $1 AND l.deleted = false
		   AND (l.is_hidden = false OR l.creator_acc_id = $2)
		 GROUP BY l.id`,
		listID, viewerAccID).Scan(
		&list.ID, &list.CoupleID, &list.Kind, &list.Title, &list.Emoji,
		&list.BackgroundColor, &list.CreatorAccID, &list.AssignedTo,
		&list.IsHidden, &list.Deleted, &list.Position,
		&list.CreatedAt, &list.UpdatedAt, &list.ItemCount, &list.CompletedCount)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("list %s: %w", listID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return &list, nil
}

// ListLists returns the couple's non-deleted lists visible to the viewer,
// in collection order, with item counts that exclude soft-deleted items.
func (s *Store) ListLists(ctx context.Context, coupleID, viewerAccID string) ([]models.List, error) {
	rows, err := s.db.Query(ctx,
		`SELECT l.id, l.couple_id, l.kind, l.title, l.emoji, l.background_color,
		 l.creator_acc_id, l.assigned_to, l.is_hidden, l.deleted, l.position,
		 l.created_at, l.updated_at,
		 COUNT(i.id) FILTER (WHERE i.deleted = false) AS item_count,
		 COUNT(i.id) FILTER (WHERE i.deleted = false AND i.completed = true) AS completed_count
		 FROM lists l
		 LEFT JOIN items i ON i.list_id = l.id
		 WHERE l.couple_id = $1 AND l.deleted = false
		   AND (l.is_hidden = false OR l.creator_acc_id = $2)
		 GROUP BY l.id
		 ORDER BY l.position`,
		coupleID, viewerAccID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var list models.List
		err := rows.Scan(
			&list.ID, &list.CoupleID, &list.Kind, &list.Title, &list.Emoji,
			&list.BackgroundColor, &list.CreatorAccID, &list.AssignedTo,
			&list.IsHidden, &list.Deleted, &list.Position,
			&list.CreatedAt, &list.UpdatedAt, &list.ItemCount, &list.CompletedCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// UpdateList assigns the list's mutable fields. The hidden flag and scope
// are immutable and deliberately not part of the statement.
func (s *Store) UpdateList(ctx context.Context, list *models.List) error {
	result, err := s.db.Exec(ctx,
		`UPDATE lists
		 SET title = $1, emoji = $2, background_color = $3, assigned_to = $4,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5 AND deleted = false`,
		list.Title, list.Emoji, list.BackgroundColor, list.AssignedTo, list.ID)

	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list %s: %w", list.ID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SoftDeleteList(ctx context.Context, listID string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE lists SET deleted = true, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND deleted = false`,
		listID)

	if err != nil {
		return fmt.Errorf("failed to soft-delete list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("list %s: %w", listID, models.ErrNotFound)
	}
	return nil
}
