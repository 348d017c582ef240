package models

import (
	"time"

	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents a person who can hold assignments.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FirstName   string         `gorm:"column:first_name;not null" json:"firstName"`
	LastName    string         `gorm:"column:last_name;not null" json:"lastName"`
	Role        enums.UserRole `gorm:"type:text;not null;default:'USER'" json:"role"`
	Assignments []Assignment   `gorm:"foreignKey:UserID" json:"assignments,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// FullName joins the name parts for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
