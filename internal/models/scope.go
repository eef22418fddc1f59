package models

// AccessScope is the read/write boundary a list or item is created under.
// A shared scope is readable and writable by both partners of the couple;
// a private scope restricts the entity to its creator. The scope is chosen
// exactly once, at creation, and never changes afterward.
type AccessScope struct {
	CoupleID string
	// OwnerAccountID is set for a private scope and empty for the shared one.
	OwnerAccountID string
}

// SharedScope returns the couple-wide scope.
func SharedScope(coupleID string) AccessScope {
	return AccessScope{CoupleID: coupleID}
}

// PrivateScope returns the creator-only scope within a couple.
func PrivateScope(coupleID, accountID string) AccessScope {
	return AccessScope{CoupleID: coupleID, OwnerAccountID: accountID}
}

// IsPrivate reports whether the scope is restricted to a single account.
func (s AccessScope) IsPrivate() bool {
	return s.OwnerAccountID != ""
}
