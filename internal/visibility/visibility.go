// Package visibility decides which access scope collaborative entities are
// created under, and guards the hidden/scope pairing against later edits.
package visibility

import (
	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// ScopeForCreation picks the access scope a new list or item is created
// under. Hidden entities go into the creator's private scope, everything
// else into the couple's shared scope. Called exactly once, at creation.
func ScopeForCreation(isHidden bool, coupleID, creatorAccID string) models.AccessScope {
	if isHidden {
		return models.PrivateScope(coupleID, creatorAccID)
	}
	return models.SharedScope(coupleID)
}

// CheckEdit rejects any attempt to change an entity's hidden flag after
// creation. Flipping it would require migrating the entity to a different
// access scope, which is a re-creation, not a field edit.
//
// newHidden is nil when the edit does not touch the flag.
func CheckEdit(existingHidden bool, newHidden *bool) error {
	if newHidden != nil && *newHidden != existingHidden {
		return models.ErrOwnershipViolation
	}
	return nil
}
