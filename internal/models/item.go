package models

import "time"

// AssignmentTag records to whom an item or list belongs from the creator's
// point of view. It is creator-relative: the same stored tag lands in
// different display buckets for the two partners.
type AssignmentTag string

const (
	AssignedMe      AssignmentTag = "me"
	AssignedPartner AssignmentTag = "partner"
	AssignedUs      AssignmentTag = "us"
)

// Valid reports whether t is one of the known assignment tags.
func (t AssignmentTag) Valid() bool {
	switch t {
	case AssignedMe, AssignedPartner, AssignedUs:
		return true
	}
	return false
}

// RecurrenceUnit is the interval at which a completed item respawns.
type RecurrenceUnit string

const (
	RecurDaily    RecurrenceUnit = "daily"
	RecurWeekly   RecurrenceUnit = "weekly"
	RecurBiweekly RecurrenceUnit = "biweekly"
	RecurMonthly  RecurrenceUnit = "monthly"
	RecurYearly   RecurrenceUnit = "yearly"
)

// Valid reports whether u is one of the known recurrence units.
func (u RecurrenceUnit) Valid() bool {
	switch u {
	case RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// Item is a single entry in a collaborative list: a to-do, a shopping item
// or an event, depending on the list kind.
type Item struct {
	ID            string          `json:"id" db:"id"`
	ListID        string          `json:"list_id" db:"list_id"`
	Title         string          `json:"title" db:"title"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	Completed     bool            `json:"completed" db:"completed"`
	DueDate       *time.Time      `json:"due_date,omitempty" db:"due_date"`
	CreatorAccID  string          `json:"creator_acc_id" db:"creator_acc_id"`
	AssignedTo    AssignmentTag   `json:"assigned_to" db:"assigned_to"`
	IsHidden      bool            `json:"is_hidden" db:"is_hidden"`
	Deleted       bool            `json:"deleted" db:"deleted"`
	RecurringUnit *RecurrenceUnit `json:"recurring_unit,omitempty" db:"recurring_unit"`

	// Reminder offsets in minutes before the due date. Zero means "at the
	// due date"; nil means no reminder.
	AlertMinutes       *int `json:"alert_minutes,omitempty" db:"alert_minutes"`
	SecondAlertMinutes *int `json:"second_alert_minutes,omitempty" db:"second_alert_minutes"`

	// Handles of currently scheduled reminders, if any.
	ReminderID       *string `json:"-" db:"reminder_id"`
	SecondReminderID *string `json:"-" db:"second_reminder_id"`

	// NextTodoID links a completed recurring item to its spawned successor.
	NextTodoID *string `json:"next_todo_id,omitempty" db:"next_todo_id"`

	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateItemRequest struct {
	Title              string     `json:"title" validate:"required,min=1,max=255"`
	Notes              *string    `json:"notes,omitempty"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	AssignedTo         string     `json:"assigned_to" validate:"required,oneof=me partner us"`
	IsHidden           bool       `json:"is_hidden"`
	RecurringUnit      *string    `json:"recurring_unit,omitempty" validate:"omitempty,oneof=daily weekly biweekly monthly yearly"`
	AlertMinutes       *int       `json:"alert_minutes,omitempty" validate:"omitempty,min=0"`
	SecondAlertMinutes *int       `json:"second_alert_minutes,omitempty" validate:"omitempty,min=0"`
}

type UpdateItemRequest struct {
	Title              *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Notes              *string    `json:"notes,omitempty"`
	DueDate            *time.Time `json:"due_date,omitempty"`
	ClearDueDate       bool       `json:"clear_due_date,omitempty"`
	AssignedTo         *string    `json:"assigned_to,omitempty" validate:"omitempty,oneof=me partner us"`
	IsHidden           *bool      `json:"is_hidden,omitempty"`
	RecurringUnit      *string    `json:"recurring_unit,omitempty" validate:"omitempty,oneof=daily weekly biweekly monthly yearly"`
	AlertMinutes       *int       `json:"alert_minutes,omitempty" validate:"omitempty,min=0"`
	SecondAlertMinutes *int       `json:"second_alert_minutes,omitempty" validate:"omitempty,min=0"`
}

type ToggleItemRequest struct {
	Completed bool `json:"completed"`
}
