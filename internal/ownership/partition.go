// Package ownership projects a couple's collaborative entities into the
// per-viewer display buckets (mine / partner's / shared) and resolves which
// partner profile belongs to the current session.
package ownership

import (
	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

// Buckets holds one viewer's partition of a collection of items.
type Buckets struct {
	Mine     []models.Item `json:"mine"`
	Partners []models.Item `json:"partners"`
	Shared   []models.Item `json:"shared"`
}

// ListBuckets holds one viewer's partition of a collection of lists.
type ListBuckets struct {
	Mine     []models.List `json:"mine"`
	Partners []models.List `json:"partners"`
	Shared   []models.List `json:"shared"`
}

type bucket int

const (
	bucketNone bucket = iota
	bucketMine
	bucketPartners
	bucketShared
)

// bucketFor applies the creator-relative assignment policy:
//
//	"us"      -> shared, regardless of creator
//	"me"      -> mine for the creator, partner's for the other viewer
//	"partner" -> partner's for the creator, mine for the other viewer
//
// The flip in the last two rules reflects responsibility rather than
// authorship: a task the creator assigned to "partner" is the other
// viewer's own task.
func bucketFor(tag models.AssignmentTag, creatorAccID, viewerAccID string) bucket {
	switch tag {
	case models.AssignedUs:
		return bucketShared
	case models.AssignedMe:
		if creatorAccID == viewerAccID {
			return bucketMine
		}
		return bucketPartners
	case models.AssignedPartner:
		if creatorAccID == viewerAccID {
			return bucketPartners
		}
		return bucketMine
	}
	// Unknown tag: refuse to guess a bucket.
	return bucketNone
}

// Partition buckets every non-deleted item relative to the viewer. When the
// viewer or partner identity is not yet resolved it returns empty buckets
// rather than guessing. The partition is total and disjoint over the known
// assignment tags.
func Partition(items []models.Item, viewerAccID, partnerAccID string) Buckets {
	b := Buckets{
		Mine:     []models.Item{},
		Partners: []models.Item{},
		Shared:   []models.Item{},
	}
	if viewerAccID == "" || partnerAccID == "" {
		return b
	}

	for _, item := range items {
		if item.Deleted {
			continue
		}
		switch bucketFor(item.AssignedTo, item.CreatorAccID, viewerAccID) {
		case bucketMine:
			b.Mine = append(b.Mine, item)
		case bucketPartners:
			b.Partners = append(b.Partners, item)
		case bucketShared:
			b.Shared = append(b.Shared, item)
		}
	}
	return b
}

// PartitionLists buckets every non-deleted list relative to the viewer,
// using the same policy as Partition.
func PartitionLists(lists []models.List, viewerAccID, partnerAccID string) ListBuckets {
	b := ListBuckets{
		Mine:     []models.List{},
		Partners: []models.List{},
		Shared:   []models.List{},
	}
	if viewerAccID == "" || partnerAccID == "" {
		return b
	}

	for _, list := range lists {
		if list.Deleted {
			continue
		}
		switch bucketFor(list.AssignedTo, list.CreatorAccID, viewerAccID) {
		case bucketMine:
			b.Mine = append(b.Mine, list)
		case bucketPartners:
			b.Partners = append(b.Partners, list)
		case bucketShared:
			b.Shared = append(b.Shared, list)
		}
	}
	return b
}
