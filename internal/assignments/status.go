package assignments

import "github.com/angelmondragon/roster-backend/pkg/enums"

// recomputeShiftStatus derives a shift's status from its active
// assignment count and capacity. CANCELLED is sticky: staffing changes
// never revive a cancelled shift.
func recomputeShiftStatus(assignedCount, requiredStaff int, current enums.ShiftStatus) enums.ShiftStatus {
	if current == enums.ShiftStatusCancelled {
		return enums.ShiftStatusCancelled
	}
	if assignedCount >= requiredStaff {
		return enums.ShiftStatusAssigned
	}
	return enums.ShiftStatusOpen
}
