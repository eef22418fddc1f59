package ownership

import (
	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// ResolveProfiles matches the couple's partner slots against the viewer's
// account ID. Both results are nil when the couple is absent, deleted, or
// the viewer is not a member. The partner profile is nil while the invite
// has not been accepted yet.
//
// This is the sole source of the viewer/partner ID pair fed into Partition.
func ResolveProfiles(couple *models.Couple, viewerAccID string) (mine, partner *models.PartnerProfile) {
	if couple == nil || couple.Deleted || viewerAccID == "" {
		return nil, nil
	}

	for i := range couple.Profiles {
		p := &couple.Profiles[i]
		if p.AccountID == viewerAccID {
			mine = p
		} else {
			partner = p
		}
	}

	if mine == nil {
		// Viewer is not part of this couple; do not leak the other profile.
		return nil, nil
	}
	return mine, partner
}

// PartnerAccountID returns the counterpart's account ID, or "" when the
// partner slot is still empty.
func PartnerAccountID(couple *models.Couple, viewerAccID string) string {
	_, partner := ResolveProfiles(couple, viewerAccID)
	if partner == nil {
		return ""
	}
	return partner.AccountID
}
