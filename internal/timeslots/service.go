package timeslots

import (
	"context"
	"fmt"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTimeslotInput captures the data required to create a time window.
type CreateTimeslotInput struct {
	Name      string
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}

// Service defines timeslot operations. Timeslots are immutable after creation.
type Service interface {
	Create(ctx context.Context, input CreateTimeslotInput) (*models.Timeslot, error)
	FindAll(ctx context.Context) ([]models.Timeslot, error)
	FindOne(ctx context.Context, id uuid.UUID) (*models.Timeslot, error)
}

type service struct {
	repo Repository
}

// NewService builds a timeslot service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("timeslots repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateTimeslotInput) (*models.Timeslot, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timeslot name required")
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start time must be before end time")
	}

	timeslot := &models.Timeslot{
		Name:      input.Name,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	created, err := s.repo.Create(ctx, timeslot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create timeslot")
	}
	return created, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.Timeslot, error) {
	timeslots, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list timeslots")
	}
	return timeslots, nil
}

func (s *service) FindOne(ctx context.Context, id uuid.UUID) (*models.Timeslot, error) {
	timeslot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "timeslot not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timeslot")
	}
	return timeslot, nil
}
