package models

import "time"

// Couple is the shared context binding two partner profiles. The second
// profile is absent until an invite is accepted. Couples are only ever
// soft-deleted so that history survives a partner moving to a new couple.
type Couple struct {
	ID              string    `json:"id" db:"id"`
	BackgroundPhoto *string   `json:"background_photo,omitempty" db:"background_photo"`
	InviteToken     *string   `json:"invite_token,omitempty" db:"invite_token"`
	Deleted         bool      `json:"deleted" db:"deleted"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Loaded alongside the couple
	Profiles []PartnerProfile `json:"profiles,omitempty"`
}

// PartnerProfile is one account's presence inside a couple. Both partners
// can read and write either profile.
type PartnerProfile struct {
	ID          string    `json:"id" db:"id"`
	CoupleID    string    `json:"couple_id" db:"couple_id"`
	AccountID   string    `json:"account_id" db:"account_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Mood        string    `json:"mood" db:"mood"`
	AvatarURL   *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateCoupleRequest struct {
	DisplayName string  `json:"display_name" validate:"required,min=1,max=100"`
	Mood        string  `json:"mood" validate:"max=100"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Mood        *string `json:"mood,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type JoinCoupleRequest struct {
	Token       string  `json:"token" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required,min=1,max=100"`
	Mood        string  `json:"mood" validate:"max=100"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type SetBackgroundRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,url"`
}
