package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

func (s *Store) CreateCouple(ctx context.Context, couple *models.Couple, creatorProfile *models.PartnerProfile) error {
	if couple.ID == "" {
		couple.ID = uuid.NewString()
	}
	if creatorProfile.ID == "" {
		creatorProfile.ID = uuid.NewString()
	}
	creatorProfile.CoupleID = couple.ID

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO couples (id) VALUES ($1)
		 RETURNING created_at, updated_at`,
		couple.ID).Scan(&couple.CreatedAt, &couple.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create couple: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO partner_profiles (id, couple_id, account_id, display_name, mood, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		creatorProfile.ID, couple.ID, creatorProfile.AccountID,
		creatorProfile.DisplayName, creatorProfile.Mood, creatorProfile.AvatarURL).Scan(
		&creatorProfile.CreatedAt, &creatorProfile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create partner profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	couple.Profiles = []models.PartnerProfile{*creatorProfile}
	return nil
}

// GetCoupleByAccount returns the account's active (non-deleted) couple with
// both partner profiles loaded.
func (s *Store) GetCoupleByAccount(ctx context.Context, accountID string) (*models.Couple, error) {
	var couple models.Couple
	err := s.db.QueryRow(ctx,
		`SELECT c.id, c.background_photo, c.invite_token, c.deleted, c.created_at, c.updated_at
		 FROM couples c
		 JOIN partner_profiles pp ON pp.couple_id = c.id
		 WHERE pp.account_id = $1 AND c.deleted = false
		 ORDER BY c.created_at DESC
		 LIMIT 1`,
		accountID).Scan(
		&couple.ID, &couple.BackgroundPhoto, &couple.InviteToken,
		&couple.Deleted, &couple.CreatedAt, &couple.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("couple for account %s: %w", accountID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}

	if err := s.loadProfiles(ctx, &couple); err != nil {
		return nil, err
	}
	return &couple, nil
}

func (s *Store) GetCoupleByInviteToken(ctx context.Context, token string) (*models.Couple, error) {
	var couple models.Couple
	err := s.db.QueryRow(ctx,
		`SELECT id, background_photo, invite_token, deleted, created_at, updated_at
		 FROM couples
		 WHERE invite_token = $1 AND deleted = false`,
		token).Scan(
		&couple.ID, &couple.BackgroundPhoto, &couple.InviteToken,
		&couple.Deleted, &couple.CreatedAt, &couple.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("couple for invite token: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get couple by token: %w", err)
	}

	if err := s.loadProfiles(ctx, &couple); err != nil {
		return nil, err
	}
	return &couple, nil
}

func (s *Store) loadProfiles(ctx context.Context, couple *models.Couple) error {
	rows, err := s.db.Query(ctx,
		`SELECT id, couple_id, account_id, display_name, mood, avatar_url, created_at, updated_at
		 FROM partner_profiles
		 WHERE couple_id = $1
		 ORDER BY created_at`,
		couple.ID)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	defer rows.Close()

	couple.Profiles = nil
	for rows.Next() {
		var p models.PartnerProfile
		err := rows.Scan(&p.ID, &p.CoupleID, &p.AccountID, &p.DisplayName,
			&p.Mood, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan profile: %w", err)
		}
		couple.Profiles = append(couple.Profiles, p)
	}
	return rows.Err()
}

func (s *Store) AddProfile(ctx context.Context, profile *models.PartnerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO partner_profiles (id, couple_id, account_id, display_name, mood, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		profile.ID, profile.CoupleID, profile.AccountID,
		profile.DisplayName, profile.Mood, profile.AvatarURL).Scan(
		&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to add profile: %w", err)
	}
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, profile *models.PartnerProfile) error {
	result, err := s.db.Exec(ctx,
		`UPDATE partner_profiles
		 SET display_name = $1, mood = $2, avatar_url = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		profile.DisplayName, profile.Mood, profile.AvatarURL, profile.ID)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profile.ID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SetInviteToken(ctx context.Context, coupleID string, token *string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE couples SET invite_token = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND deleted = false`,
		token, coupleID)

	if err != nil {
		return fmt.Errorf("failed to set invite token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("couple %s: %w", coupleID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) SetBackgroundPhoto(ctx context.Context, coupleID, photoURL string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE couples SET background_photo = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND deleted = false`,
		photoURL, coupleID)

	if err != nil {
		return fmt.Errorf("failed to set background photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("couple %s: %w", coupleID, models.ErrNotFound)
	}
	return nil
}

// SoftDeleteCouple flags the couple deleted. Couples are never removed from
// storage; a partner accepting an invite into a different couple leaves the
// old one behind as a tombstone.
func (s *Store) SoftDeleteCouple(ctx context.Context, coupleID string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE couples SET deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		coupleID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete couple: %w", err)
	}
	return nil
}

func (s *Store) CoupleAccountIDs(ctx context.Context, coupleID string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT account_id FROM partner_profiles WHERE couple_id = $1 ORDER BY created_at`,
		coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple accounts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
