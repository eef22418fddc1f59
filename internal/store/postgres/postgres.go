// Package postgres implements the store.Store interface on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Wizzel1/cuppl-sub000/internal/database"
	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
)

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAccount(ctx context.Context, acc *models.Account) error {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO accounts (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		acc.ID, acc.Username, acc.Email, acc.PasswordHash).Scan(
		&acc.CreatedAt, &acc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	var acc models.Account
	err := s.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM accounts WHERE id = $1`,
		id).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash,
		&acc.CreatedAt, &acc.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

func (s *Store) GetAccountByLogin(ctx context.Context, emailOrUsername string) (*models.Account, error) {
	var acc models.Account
	err := s.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM accounts
		 WHERE (email = $1 OR username = $1) AND password_hash IS NOT NULL`,
		emailOrUsername).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash,
		&acc.CreatedAt, &acc.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", emailOrUsername, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

func (s *Store) AccountExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 OR email = $2)",
		username, email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}
