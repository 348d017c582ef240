package models

import (
	"time"

	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/google/uuid"
)

// Assignment links a user to a shift with its own lifecycle status.
// The (shift_id, user_id) pair is unique regardless of status.
type Assignment struct {
	ID                  uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShiftID             uuid.UUID              `gorm:"column:shift_id;type:uuid;not null;uniqueIndex:idx_assignments_shift_user" json:"shiftId"`
	Shift               *Shift                 `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	UserID              *uuid.UUID             `gorm:"column:user_id;type:uuid;uniqueIndex:idx_assignments_shift_user" json:"userId"`
	User                *User                  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status              enums.AssignmentStatus `gorm:"type:text;not null;default:'ASSIGNED'" json:"status"`
	UnavailableReason   *string                `gorm:"column:unavailable_reason;type:text" json:"unavailableReason,omitempty"`
	MarkedUnavailableAt *time.Time             `gorm:"column:marked_unavailable_at" json:"markedUnavailableAt,omitempty"`
	CreatedAt           time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
