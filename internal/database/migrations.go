package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every boot.
func Migrate(db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS couples (
			id TEXT PRIMARY KEY,
			background_photo TEXT,
			invite_token TEXT UNIQUE,
			deleted BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS partner_profiles (
			id TEXT PRIMARY KEY,
			couple_id TEXT NOT NULL REFERENCES couples(id),
			account_id TEXT NOT NULL REFERENCES accounts(id),
			display_name VARCHAR(100) NOT NULL,
			mood VARCHAR(100) NOT NULL DEFAULT '',
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(couple_id, account_id)
		)`,

		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			couple_id TEXT NOT NULL REFERENCES couples(id),
			kind VARCHAR(20) NOT NULL CHECK (kind IN ('todos', 'shopping', 'events')),
			title VARCHAR(255) NOT NULL,
			emoji VARCHAR(20),
			background_color VARCHAR(20),
			creator_acc_id TEXT NOT NULL REFERENCES accounts(id),
			assigned_to VARCHAR(10) NOT NULL CHECK (assigned_to IN ('me', 'partner', 'us')),
			is_hidden BOOLEAN NOT NULL DEFAULT false,
			deleted BOOLEAN NOT NULL DEFAULT false,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			list_id TEXT NOT NULL REFERENCES lists(id),
			title VARCHAR(255) NOT NULL,
			notes TEXT,
			completed BOOLEAN NOT NULL DEFAULT false,
			due_date TIMESTAMPTZ,
			creator_acc_id TEXT NOT NULL REFERENCES accounts(id),
			assigned_to VARCHAR(10) NOT NULL CHECK (assigned_to IN ('me', 'partner', 'us')),
			is_hidden BOOLEAN NOT NULL DEFAULT false,
			deleted BOOLEAN NOT NULL DEFAULT false,
			recurring_unit VARCHAR(10) CHECK (recurring_unit IN ('daily', 'weekly', 'biweekly', 'monthly', 'yearly')),
			alert_minutes INTEGER,
			second_alert_minutes INTEGER,
			reminder_id TEXT,
			second_reminder_id TEXT,
			next_todo_id TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL REFERENCES items(id),
			couple_id TEXT NOT NULL REFERENCES couples(id),
			title VARCHAR(255) NOT NULL,
			trigger_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL REFERENCES accounts(id),
			type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			data TEXT,
			is_read BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_partner_profiles_account_id ON partner_profiles(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lists_couple_id ON lists(couple_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_trigger_at ON reminders(trigger_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_account_id ON notifications(account_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(context.Background(), stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
