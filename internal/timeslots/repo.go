package timeslots

import (
	"context"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes timeslot persistence operations.
type Repository interface {
	Create(ctx context.Context, timeslot *models.Timeslot) (*models.Timeslot, error)
	FindAll(ctx context.Context) ([]models.Timeslot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Timeslot, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a timeslot repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, timeslot *models.Timeslot) (*models.Timeslot, error) {
	if err := r.db.WithContext(ctx).Create(timeslot).Error; err != nil {
		return nil, err
	}
	return timeslot, nil
}

func (r *repository) FindAll(ctx context.Context) ([]models.Timeslot, error) {
	var timeslots []models.Timeslot
	err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Find(&timeslots).Error
	if err != nil {
		return nil, err
	}
	return timeslots, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Timeslot, error) {
	var timeslot models.Timeslot
	err := r.db.WithContext(ctx).
		Preload("Shifts").
		Where("id = ?", id).
		First(&timeslot).Error
	if err != nil {
		return nil, err
	}
	return &timeslot, nil
}
