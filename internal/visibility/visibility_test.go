package visibility

import (
	"errors"
	"testing"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
)

func TestScopeForCreation(t *testing.T) {
	const (
		coupleID = "couple-1"
		creator  = "acc-alice"
	)

	t.Run("visible goes to shared scope", func(t *testing.T) {
		scope := ScopeForCreation(false, coupleID, creator)
		if scope.CoupleID != coupleID {
			t.Errorf("CoupleID = %q, want %q", scope.CoupleID, coupleID)
		}
		if scope.IsPrivate() {
			t.Error("visible entity must not be in a private scope")
		}
	})

	t.Run("hidden goes to creator private scope", func(t *testing.T) {
		scope := ScopeForCreation(true, coupleID, creator)
		if !scope.IsPrivate() {
			t.Fatal("hidden entity must be in a private scope")
		}
		if scope.OwnerAccountID != creator {
			t.Errorf("OwnerAccountID = %q, want %q", scope.OwnerAccountID, creator)
		}
	})
}

func TestCheckEdit(t *testing.T) {
	hidden := true
	visible := false

	tests := []struct {
		name           string
		existingHidden bool
		newHidden      *bool
		wantErr        bool
	}{
		{"untouched flag on visible", false, nil, false},
		{"untouched flag on hidden", true, nil, false},
		{"same value visible", false, &visible, false},
		{"same value hidden", true, &hidden, false},
		{"reveal attempt", true, &visible, true},
		{"hide attempt", false, &hidden, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEdit(tt.existingHidden, tt.newHidden)
			if tt.wantErr {
				if !errors.Is(err, models.ErrOwnershipViolation) {
					t.Fatalf("err = %v, want ErrOwnershipViolation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
