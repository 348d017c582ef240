package assignments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	"github.com/angelmondragon/roster-backend/pkg/metrics"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minWithdrawReasonLength = 10

// TxRunner runs a function inside one database transaction.
// *db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AssignInput captures an admin-driven assignment request.
type AssignInput struct {
	ShiftID uuid.UUID
	UserID  uuid.UUID
	Status  enums.AssignmentStatus
}

// WithdrawInput marks an active assignment unavailable.
type WithdrawInput struct {
	AssignmentID uuid.UUID
	Reason       string
}

// Service defines assignment engine operations. Every mutation keeps
// the owning shift's status consistent with its active assignment
// count in the same transaction.
type Service interface {
	Assign(ctx context.Context, input AssignInput) (*models.Assignment, error)
	PickUp(ctx context.Context, shiftID, userID uuid.UUID) (*models.Assignment, error)
	FindAll(ctx context.Context, filter Filter) ([]models.Assignment, error)
	FindOne(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	FindForUser(ctx context.Context, userID uuid.UUID, startDate, endDate *types.Date) ([]models.Assignment, error)
	FindForUserDay(ctx context.Context, userID uuid.UUID, date types.Date) ([]models.Assignment, error)
	FindForUserWeek(ctx context.Context, userID uuid.UUID, startDate types.Date) ([]models.Assignment, error)
	Withdraw(ctx context.Context, input WithdrawInput) (*models.Assignment, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	tx      TxRunner
	log     *logger.Logger
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService builds an assignment service. The clock defaults to
// time.Now when nil; metrics may be nil.
func NewService(repo Repository, tx TxRunner, log *logger.Logger, m *metrics.EngineMetrics, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, tx: tx, log: log, metrics: m, now: now}, nil
}

func (s *service) today() types.Date {
	return types.DateOf(s.now())
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*models.Assignment, error) {
	if input.ShiftID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	status := input.Status
	if status == "" {
		status = enums.AssignmentStatusAssigned
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignment status")
	}

	var created *models.Assignment
	outcome := metrics.OutcomeError
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		shift, err := repo.FindShiftForUpdate(ctx, input.ShiftID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock shift")
		}
		if shift.Date.Before(s.today()) {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot assign to a past shift")
		}

		exists, err := repo.PairExists(ctx, input.ShiftID, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing assignment")
		}
		if exists {
			outcome = metrics.OutcomeDuplicateRejected
			return pkgerrors.New(pkgerrors.CodeConflict, "user already assigned to this shift")
		}

		if status == enums.AssignmentStatusAssigned {
			assigned, err := repo.CountAssigned(ctx, input.ShiftID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active assignments")
			}
			if assigned >= int64(shift.RequiredStaff) {
				outcome = metrics.OutcomeCapacityRejected
				return pkgerrors.New(pkgerrors.CodeValidation, "shift is at full capacity")
			}
		}

		userID := input.UserID
		assignment := &models.Assignment{
			ShiftID: input.ShiftID,
			UserID:  &userID,
			Status:  status,
		}
		if _, err := repo.Create(ctx, assignment); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				outcome = metrics.OutcomeDuplicateRejected
				return pkgerrors.New(pkgerrors.CodeConflict, "user already assigned to this shift")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignment")
		}

		if err := s.syncShiftStatus(ctx, repo, shift); err != nil {
			return err
		}
		created = assignment
		outcome = metrics.OutcomeAssigned
		return nil
	})
	s.metrics.IncAttempt(outcome)
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithFields(ctx, map[string]any{
		"assignmentId": created.ID.String(),
		"shiftId":      input.ShiftID.String(),
		"userId":       input.UserID.String(),
	})
	s.log.Info(ctx, "assignment created")
	return s.FindOne(ctx, created.ID)
}

// PickUp is the self-service path. It only admits shifts that are
// still OPEN, then funnels through Assign for the capacity checks.
func (s *service) PickUp(ctx context.Context, shiftID, userID uuid.UUID) (*models.Assignment, error) {
	if shiftID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift id required")
	}
	shift, err := s.repo.FindShiftForUpdate(ctx, shiftID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}
	if shift.Status != enums.ShiftStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shift is not available for pickup")
	}
	return s.Assign(ctx, AssignInput{ShiftID: shiftID, UserID: userID})
}

func (s *service) FindAll(ctx context.Context, filter Filter) ([]models.Assignment, error) {
	assignments, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	return assignments, nil
}

func (s *service) FindOne(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
	}
	return assignment, nil
}

// FindForUser lists a person's assignments. The date range applies
// only when both bounds are present, inclusive on both ends.
func (s *service) FindForUser(ctx context.Context, userID uuid.UUID, startDate, endDate *types.Date) ([]models.Assignment, error) {
	filter := Filter{UserID: &userID}
	if startDate != nil && endDate != nil {
		filter.StartDate = startDate
		filter.EndDate = endDate
	}
	return s.FindAll(ctx, filter)
}

func (s *service) FindForUserDay(ctx context.Context, userID uuid.UUID, date types.Date) ([]models.Assignment, error) {
	return s.FindAll(ctx, Filter{UserID: &userID, Date: &date})
}

func (s *service) FindForUserWeek(ctx context.Context, userID uuid.UUID, startDate types.Date) ([]models.Assignment, error) {
	endDate := startDate.AddDays(6)
	return s.FindAll(ctx, Filter{UserID: &userID, StartDate: &startDate, EndDate: &endDate})
}

func (s *service) Withdraw(ctx context.Context, input WithdrawInput) (*models.Assignment, error) {
	reason := strings.TrimSpace(input.Reason)
	if len(reason) < minWithdrawReasonLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("a reason of at least %d characters is required", minWithdrawReasonLength))
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		assignment, err := repo.FindByID(ctx, input.AssignmentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
		}
		if assignment.Status != enums.AssignmentStatusAssigned {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only active assignments can be withdrawn")
		}

		shift, err := repo.FindShiftForUpdate(ctx, assignment.ShiftID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock shift")
		}
		if shift.Date.Before(s.today()) {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot withdraw from a past shift")
		}

		markedAt := s.now()
		updates := map[string]interface{}{
			"status":                enums.AssignmentStatusUnavailable,
			"unavailable_reason":    reason,
			"marked_unavailable_at": markedAt,
		}
		if err := repo.UpdateAssignment(ctx, assignment.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark assignment unavailable")
		}
		return s.syncShiftStatus(ctx, repo, shift)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(s.log.WithAssignmentID(ctx, input.AssignmentID.String()), "assignment withdrawn")
	return s.FindOne(ctx, input.AssignmentID)
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		assignment, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
		}

		shift, err := repo.FindShiftForUpdate(ctx, assignment.ShiftID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// orphaned row, just delete it
				return repo.Delete(ctx, id)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock shift")
		}

		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete assignment")
		}
		return s.syncShiftStatus(ctx, repo, shift)
	})
	if err != nil {
		return err
	}

	s.log.Info(s.log.WithAssignmentID(ctx, id.String()), "assignment removed")
	return nil
}

// syncShiftStatus re-counts active assignments inside the current
// transaction and persists the derived shift status when it changes.
func (s *service) syncShiftStatus(ctx context.Context, repo Repository, shift *models.Shift) error {
	assigned, err := repo.CountAssigned(ctx, shift.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active assignments")
	}
	next := recomputeShiftStatus(int(assigned), shift.RequiredStaff, shift.Status)
	if next == shift.Status {
		return nil
	}
	if err := repo.UpdateShiftStatus(ctx, shift.ID, next); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shift status")
	}
	s.metrics.IncTransition(next.String())
	return nil
}
