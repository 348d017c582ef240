package shifts

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateShiftInput captures the data required to open a shift.
type CreateShiftInput struct {
	Date          types.Date
	TimeslotID    uuid.UUID
	RequiredStaff int
}

// UpdateShiftInput holds optional fields for a partial shift update.
// Status overwrite is allowed and bypasses the engine's recomputation,
// so callers own the consequences.
type UpdateShiftInput struct {
	Date          *types.Date
	TimeslotID    *uuid.UUID
	Status        *enums.ShiftStatus
	RequiredStaff *int
}

// RepeatShiftInput creates one shift per date for a single timeslot.
type RepeatShiftInput struct {
	TimeslotID    uuid.UUID
	Dates         []types.Date
	RequiredStaff int
}

// Service defines shift ledger operations.
type Service interface {
	Create(ctx context.Context, input CreateShiftInput) (*models.Shift, error)
	FindAll(ctx context.Context, filter Filter) ([]models.Shift, error)
	FindOne(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	FindOpen(ctx context.Context, date *types.Date) ([]models.Shift, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateShiftInput) (*models.Shift, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Repeat(ctx context.Context, input RepeatShiftInput) ([]models.Shift, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

// NewService builds a shift service. The clock defaults to time.Now
// when nil.
func NewService(repo Repository, log *logger.Logger, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shifts repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, log: log, now: now}, nil
}

func (s *service) today() types.Date {
	return types.DateOf(s.now())
}

func (s *service) Create(ctx context.Context, input CreateShiftInput) (*models.Shift, error) {
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift date required")
	}
	if input.Date.Before(s.today()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot create shifts in the past")
	}
	if input.TimeslotID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timeslot id required")
	}
	required := input.RequiredStaff
	if required == 0 {
		required = 1
	}
	if required < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "required staff must be at least 1")
	}

	shift := &models.Shift{
		Date:          input.Date,
		TimeslotID:    input.TimeslotID,
		Status:        enums.ShiftStatusOpen,
		RequiredStaff: required,
	}
	created, err := s.repo.Create(ctx, shift)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shift")
	}

	ctx = s.log.WithFields(ctx, map[string]any{
		"shiftId":       created.ID.String(),
		"date":          created.Date.String(),
		"requiredStaff": created.RequiredStaff,
	})
	s.log.Info(ctx, "shift created")
	return created, nil
}

func (s *service) FindAll(ctx context.Context, filter Filter) ([]models.Shift, error) {
	shifts, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shifts")
	}
	return shifts, nil
}

func (s *service) FindOne(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}
	return shift, nil
}

func (s *service) FindOpen(ctx context.Context, date *types.Date) ([]models.Shift, error) {
	shifts, err := s.repo.FindOpen(ctx, date, s.today())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list open shifts")
	}
	return shifts, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateShiftInput) (*models.Shift, error) {
	updates := map[string]interface{}{}
	if input.Date != nil {
		if input.Date.Before(s.today()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot move a shift into the past")
		}
		updates["date"] = *input.Date
	}
	if input.TimeslotID != nil {
		if *input.TimeslotID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "timeslot id required")
		}
		updates["timeslot_id"] = *input.TimeslotID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shift status")
		}
		updates["status"] = *input.Status
	}
	if input.RequiredStaff != nil {
		if *input.RequiredStaff < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "required staff must be at least 1")
		}
		updates["required_staff"] = *input.RequiredStaff
	}
	if len(updates) == 0 {
		return s.FindOne(ctx, id)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shift")
	}
	return s.FindOne(ctx, id)
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shift")
	}
	s.log.Info(s.log.WithShiftID(ctx, id.String()), "shift deleted")
	return nil
}

// Repeat validates every date up front and then creates the whole run
// in one transaction, so a bad date never leaves a partial series.
func (s *service) Repeat(ctx context.Context, input RepeatShiftInput) ([]models.Shift, error) {
	if input.TimeslotID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timeslot id required")
	}
	if len(input.Dates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one date required")
	}
	required := input.RequiredStaff
	if required == 0 {
		required = 1
	}
	if required < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "required staff must be at least 1")
	}

	today := s.today()
	for _, date := range input.Dates {
		if date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift date required")
		}
		if date.Before(today) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot create shifts in the past: %s", date))
		}
	}

	shifts := make([]*models.Shift, 0, len(input.Dates))
	for _, date := range input.Dates {
		shifts = append(shifts, &models.Shift{
			Date:          date,
			TimeslotID:    input.TimeslotID,
			Status:        enums.ShiftStatusOpen,
			RequiredStaff: required,
		})
	}
	if err := s.repo.CreateBatch(ctx, shifts); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "repeat shifts")
	}

	out := make([]models.Shift, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, *shift)
	}
	ctx = s.log.WithFields(ctx, map[string]any{
		"timeslotId": input.TimeslotID.String(),
		"count":      len(out),
	})
	s.log.Info(ctx, "shift series created")
	return out, nil
}
