package shifts

import (
	"context"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows shift listings. Fields combine with AND; an exact
// Date takes precedence over the StartDate/EndDate range.
type Filter struct {
	Date       *types.Date
	StartDate  *types.Date
	EndDate    *types.Date
	TimeslotID *uuid.UUID
	Status     *enums.ShiftStatus
}

// Repository exposes shift persistence operations.
type Repository interface {
	Create(ctx context.Context, shift *models.Shift) (*models.Shift, error)
	CreateBatch(ctx context.Context, shifts []*models.Shift) error
	FindAll(ctx context.Context, filter Filter) ([]models.Shift, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	FindOpen(ctx context.Context, date *types.Date, from types.Date) ([]models.Shift, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shift repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, shift *models.Shift) (*models.Shift, error) {
	if err := r.db.WithContext(ctx).Create(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

// CreateBatch inserts every shift or none of them.
func (r *repository) CreateBatch(ctx context.Context, shifts []*models.Shift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, shift := range shifts {
			if err := tx.Create(shift).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]models.Shift, error) {
	query := r.db.WithContext(ctx).
		Preload("Timeslot").
		Preload("Assignments").
		Preload("Assignments.User").
		Order("date ASC").
		Order("created_at ASC")

	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	} else {
		if filter.StartDate != nil {
			query = query.Where("date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("date <= ?", *filter.EndDate)
		}
	}
	if filter.TimeslotID != nil {
		query = query.Where("timeslot_id = ?", *filter.TimeslotID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var shifts []models.Shift
	if err := query.Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Preload("Timeslot").
		Preload("Assignments").
		Preload("Assignments.User").
		Where("id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// FindOpen lists OPEN shifts for one date, or every OPEN shift from
// the given day onward when date is nil.
func (r *repository) FindOpen(ctx context.Context, date *types.Date, from types.Date) ([]models.Shift, error) {
	query := r.db.WithContext(ctx).
		Preload("Timeslot").
		Preload("Assignments").
		Order("date ASC").
		Order("created_at ASC").
		Where("status = ?", enums.ShiftStatusOpen)
	if date != nil {
		query = query.Where("date = ?", *date)
	} else {
		query = query.Where("date >= ?", from)
	}

	var shifts []models.Shift
	if err := query.Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Shift{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
