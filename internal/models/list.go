package models

import "time"

// ListKind distinguishes the three collaborative collection flavors.
type ListKind string

const (
	KindTodos    ListKind = "todos"
	KindShopping ListKind = "shopping"
	KindEvents   ListKind = "events"
)

// Valid reports whether k is one of the known list kinds.
func (k ListKind) Valid() bool {
	switch k {
	case KindTodos, KindShopping, KindEvents:
		return true
	}
	return false
}

// List is a collaborative collection of items owned by a couple.
type List struct {
	ID              string        `json:"id" db:"id"`
	CoupleID        string        `json:"couple_id" db:"couple_id"`
	Kind            ListKind      `json:"kind" db:"kind"`
	Title           string        `json:"title" db:"title"`
	Emoji           *string       `json:"emoji,omitempty" db:"emoji"`
	BackgroundColor *string       `json:"background_color,omitempty" db:"background_color"`
	CreatorAccID    string        `json:"creator_acc_id" db:"creator_acc_id"`
	AssignedTo      AssignmentTag `json:"assigned_to" db:"assigned_to"`
	IsHidden        bool          `json:"is_hidden" db:"is_hidden"`
	Deleted         bool          `json:"deleted" db:"deleted"`
	Position        int           `json:"position" db:"position"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`

	// Computed fields
	ItemCount      int `json:"item_count"`
	CompletedCount int `json:"completed_count"`
}

type CreateListRequest struct {
	Kind            string  `json:"kind" validate:"required,oneof=todos shopping events"`
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Emoji           *string `json:"emoji,omitempty" validate:"omitempty,max=20"`
	BackgroundColor *string `json:"background_color,omitempty" validate:"omitempty,max=20"`
	AssignedTo      string  `json:"assigned_to" validate:"required,oneof=me partner us"`
	IsHidden        bool    `json:"is_hidden"`
}

type UpdateListRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Emoji           *string `json:"emoji,omitempty" validate:"omitempty,max=20"`
	BackgroundColor *string `json:"background_color,omitempty" validate:"omitempty,max=20"`
	AssignedTo      *string `json:"assigned_to,omitempty" validate:"omitempty,oneof=me partner us"`
	IsHidden        *bool   `json:"is_hidden,omitempty"`
}
