package models

import "time"

// Notification type constants
const (
	NotifTypeReminder      = "reminder"
	NotifTypePartnerJoined = "partner_joined"
)

// Notification is an in-app notification row delivered to one account.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	AccountID string    `json:"account_id" db:"account_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Data      *string   `json:"data,omitempty" db:"data"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reminder is a pending scheduled reminder. Its ID doubles as the opaque
// handle stored on the item that scheduled it.
type Reminder struct {
	ID        string    `json:"id" db:"id"`
	ItemID    string    `json:"item_id" db:"item_id"`
	CoupleID  string    `json:"couple_id" db:"couple_id"`
	Title     string    `json:"title" db:"title"`
	TriggerAt time.Time `json:"trigger_at" db:"trigger_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
