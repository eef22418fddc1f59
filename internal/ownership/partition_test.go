package ownership

import (
	"testing"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

const (
	alice = "acc-alice"
	bob   = "acc-bob"
)

func item(id, creator string, tag models.AssignmentTag) models.Item {
	return models.Item{ID: id, CreatorAccID: creator, AssignedTo: tag}
}

func ids(items []models.Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

func assertIDs(t *testing.T, name string, got []models.Item, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("%s: got %v, want %v", name, gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("%s: got %v, want %v", name, gotIDs, want)
		}
	}
}

func TestPartitionBucketsByTag(t *testing.T) {
	items := []models.Item{
		item("a1", alice, models.AssignedMe),
		item("a2", alice, models.AssignedPartner),
		item("a3", alice, models.AssignedUs),
		item("b1", bob, models.AssignedMe),
		item("b2", bob, models.AssignedPartner),
		item("b3", bob, models.AssignedUs),
	}

	t.Run("alice viewing", func(t *testing.T) {
		b := Partition(items, alice, bob)
		assertIDs(t, "mine", b.Mine, "a1", "b2")
		assertIDs(t, "partners", b.Partners, "a2", "b1")
		assertIDs(t, "shared", b.Shared, "a3", "b3")
	})

	t.Run("bob viewing", func(t *testing.T) {
		b := Partition(items, bob, alice)
		assertIDs(t, "mine", b.Mine, "a2", "b1")
		assertIDs(t, "partners", b.Partners, "a1", "b2")
		assertIDs(t, "shared", b.Shared, "a3", "b3")
	})
}

// The two partners' views mirror each other: whatever lands in one
// viewer's "mine" lands in the other's "partner's", and shared is
// identical for both.
func TestPartitionSymmetry(t *testing.T) {
	items := []models.Item{
		item("a1", alice, models.AssignedMe),
		item("a2", alice, models.AssignedPartner),
		item("b1", bob, models.AssignedMe),
		item("b2", bob, models.AssignedUs),
	}

	forAlice := Partition(items, alice, bob)
	forBob := Partition(items, bob, alice)

	if len(forAlice.Mine) != len(forBob.Partners) {
		t.Errorf("alice mine (%d) should mirror bob partners (%d)",
			len(forAlice.Mine), len(forBob.Partners))
	}
	if len(forAlice.Partners) != len(forBob.Mine) {
		t.Errorf("alice partners (%d) should mirror bob mine (%d)",
			len(forAlice.Partners), len(forBob.Mine))
	}
	if len(forAlice.Shared) != len(forBob.Shared) {
		t.Errorf("shared differs between viewers: %d vs %d",
			len(forAlice.Shared), len(forBob.Shared))
	}
}

func TestPartitionIsTotal(t *testing.T) {
	items := []models.Item{
		item("a1", alice, models.AssignedMe),
		item("a2", alice, models.AssignedPartner),
		item("a3", alice, models.AssignedUs),
		item("b1", bob, models.AssignedMe),
	}

	b := Partition(items, alice, bob)
	total := len(b.Mine) + len(b.Partners) + len(b.Shared)
	if total != len(items) {
		t.Fatalf("partition lost items: got %d, want %d", total, len(items))
	}
}

func TestPartitionSkipsDeleted(t *testing.T) {
	gone := item("gone", alice, models.AssignedUs)
	gone.Deleted = true
	items := []models.Item{
		gone,
		item("kept", alice, models.AssignedUs),
	}

	b := Partition(items, alice, bob)
	assertIDs(t, "shared", b.Shared, "kept")
}

func TestPartitionDropsUnknownTag(t *testing.T) {
	items := []models.Item{
		item("x1", alice, models.AssignmentTag("everyone")),
		item("ok", alice, models.AssignedMe),
	}

	b := Partition(items, alice, bob)
	total := len(b.Mine) + len(b.Partners) + len(b.Shared)
	if total != 1 {
		t.Fatalf("unknown tag should be dropped, got %d bucketed items", total)
	}
	assertIDs(t, "mine", b.Mine, "ok")
}

func TestPartitionUnresolvedIdentities(t *testing.T) {
	items := []models.Item{item("a1", alice, models.AssignedMe)}

	tests := []struct {
		name    string
		viewer  string
		partner string
	}{
		{"no viewer", "", bob},
		{"no partner", alice, ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Partition(items, tt.viewer, tt.partner)
			if len(b.Mine)+len(b.Partners)+len(b.Shared) != 0 {
				t.Fatal("expected empty buckets for unresolved identities")
			}
			if b.Mine == nil || b.Partners == nil || b.Shared == nil {
				t.Fatal("buckets must be empty slices, not nil")
			}
		})
	}
}

func TestPartitionLists(t *testing.T) {
	lists := []models.List{
		{ID: "l1", CreatorAccID: alice, AssignedTo: models.AssignedMe},
		{ID: "l2", CreatorAccID: bob, AssignedTo: models.AssignedPartner},
		{ID: "l3", CreatorAccID: bob, AssignedTo: models.AssignedUs},
		{ID: "l4", CreatorAccID: alice, AssignedTo: models.AssignedUs, Deleted: true},
	}

	b := PartitionLists(lists, alice, bob)
	if len(b.Mine) != 2 {
		t.Errorf("mine: got %d lists, want 2", len(b.Mine))
	}
	if len(b.Partners) != 0 {
		t.Errorf("partners: got %d lists, want 0", len(b.Partners))
	}
	if len(b.Shared) != 1 {
		t.Errorf("shared: got %d lists, want 1", len(b.Shared))
	}
}
