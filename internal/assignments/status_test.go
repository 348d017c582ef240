package assignments

import (
	"testing"

	"github.com/angelmondragon/roster-backend/pkg/enums"
)

func TestRecomputeShiftStatus(t *testing.T) {
	cases := []struct {
		name     string
		assigned int
		required int
		current  enums.ShiftStatus
		want     enums.ShiftStatus
	}{
		{"empty shift stays open", 0, 1, enums.ShiftStatusOpen, enums.ShiftStatusOpen},
		{"reaching capacity assigns", 1, 1, enums.ShiftStatusOpen, enums.ShiftStatusAssigned},
		{"over capacity still assigned", 3, 2, enums.ShiftStatusOpen, enums.ShiftStatusAssigned},
		{"shortfall reopens", 1, 2, enums.ShiftStatusAssigned, enums.ShiftStatusOpen},
		{"full withdrawal reopens", 0, 1, enums.ShiftStatusAssigned, enums.ShiftStatusOpen},
		{"cancelled sticky at capacity", 2, 2, enums.ShiftStatusCancelled, enums.ShiftStatusCancelled},
		{"cancelled sticky when empty", 0, 2, enums.ShiftStatusCancelled, enums.ShiftStatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recomputeShiftStatus(tc.assigned, tc.required, tc.current)
			if got != tc.want {
				t.Fatalf("recomputeShiftStatus(%d, %d, %s) = %s, want %s",
					tc.assigned, tc.required, tc.current, got, tc.want)
			}
		})
	}
}
