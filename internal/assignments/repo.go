package assignments

import (
	"context"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows assignment listings. Date filters join the shifts
// table and switch ordering to shift date.
type Filter struct {
	UserID    *uuid.UUID
	ShiftID   *uuid.UUID
	Status    *enums.AssignmentStatus
	Date      *types.Date
	StartDate *types.Date
	EndDate   *types.Date
}

// Repository exposes assignment persistence plus the shift rows the
// engine recomputes. WithTx rebinds it to a transaction handle.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindShiftForUpdate(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error)
	PairExists(ctx context.Context, shiftID, userID uuid.UUID) (bool, error)
	CountAssigned(ctx context.Context, shiftID uuid.UUID) (int64, error)
	Create(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	Find(ctx context.Context, filter Filter) ([]models.Assignment, error)
	UpdateShiftStatus(ctx context.Context, shiftID uuid.UUID, status enums.ShiftStatus) error
	UpdateAssignment(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindShiftForUpdate loads the shift row, holding a row lock for the
// rest of the transaction on dialects that support it. sqlite
// serializes writers on its own.
func (r *repository) FindShiftForUpdate(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var shift models.Shift
	err := query.Where("id = ?", shiftID).First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// PairExists reports whether the (shift, user) pair already has a row
// in any status.
func (r *repository) PairExists(ctx context.Context, shiftID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("shift_id = ? AND user_id = ?", shiftID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountAssigned counts the rows that consume shift capacity.
func (r *repository) CountAssigned(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("shift_id = ? AND status = ?", shiftID, enums.AssignmentStatusAssigned).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) Create(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error) {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Shift.Timeslot").
		Preload("User").
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) Find(ctx context.Context, filter Filter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Preload("Shift").
		Preload("Shift.Timeslot").
		Preload("User")

	if filter.UserID != nil {
		query = query.Where("assignments.user_id = ?", *filter.UserID)
	}
	if filter.ShiftID != nil {
		query = query.Where("assignments.shift_id = ?", *filter.ShiftID)
	}
	if filter.Status != nil {
		query = query.Where("assignments.status = ?", *filter.Status)
	}

	dated := filter.Date != nil || filter.StartDate != nil || filter.EndDate != nil
	if dated {
		query = query.Joins("JOIN shifts ON shifts.id = assignments.shift_id")
		if filter.Date != nil {
			query = query.Where("shifts.date = ?", *filter.Date)
		} else {
			if filter.StartDate != nil {
				query = query.Where("shifts.date >= ?", *filter.StartDate)
			}
			if filter.EndDate != nil {
				query = query.Where("shifts.date <= ?", *filter.EndDate)
			}
		}
		query = query.Order("shifts.date ASC").Order("assignments.created_at ASC")
	} else {
		query = query.Order("assignments.created_at DESC")
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) UpdateShiftStatus(ctx context.Context, shiftID uuid.UUID, status enums.ShiftStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", shiftID).
		Update("status", status).Error
}

func (r *repository) UpdateAssignment(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
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
		Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
