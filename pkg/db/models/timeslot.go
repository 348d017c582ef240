package models

import (
	"time"

	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
)

// Timeslot is a named, reusable daily time window. Immutable after creation.
type Timeslot struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string          `gorm:"type:text;not null" json:"name"`
	StartTime types.TimeOfDay `gorm:"column:start_time;type:time;not null" json:"startTime"`
	EndTime   types.TimeOfDay `gorm:"column:end_time;type:time;not null" json:"endTime"`
	Shifts    []Shift         `gorm:"foreignKey:TimeslotID" json:"shifts,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
