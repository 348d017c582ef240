package models

import (
	"time"

	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
)

// Shift is one staffing need on one calendar date for one timeslot.
type Shift struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date          types.Date        `gorm:"type:date;not null" json:"date"`
	TimeslotID    uuid.UUID         `gorm:"column:timeslot_id;type:uuid;not null" json:"timeslotId"`
	Timeslot      *Timeslot         `gorm:"foreignKey:TimeslotID" json:"timeslot,omitempty"`
	Status        enums.ShiftStatus `gorm:"type:text;not null;default:'OPEN'" json:"status"`
	RequiredStaff int               `gorm:"column:required_staff;not null;default:1" json:"requiredStaff"`
	Assignments   []Assignment      `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
