package timeslots

import (
	"context"
	"testing"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubTimeslotsRepo struct {
	created   *models.Timeslot
	timeslots map[uuid.UUID]*models.Timeslot
}

func (s *stubTimeslotsRepo) Create(ctx context.Context, timeslot *models.Timeslot) (*models.Timeslot, error) {
	if timeslot.ID == uuid.Nil {
		timeslot.ID = uuid.New()
	}
	s.created = timeslot
	return timeslot, nil
}

func (s *stubTimeslotsRepo) FindAll(ctx context.Context) ([]models.Timeslot, error) {
	out := make([]models.Timeslot, 0, len(s.timeslots))
	for _, ts := range s.timeslots {
		out = append(out, *ts)
	}
	return out, nil
}

func (s *stubTimeslotsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Timeslot, error) {
	ts, ok := s.timeslots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ts, nil
}

func mustTime(t *testing.T, value string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return tod
}

func TestCreateTimeslotRejectsInvertedWindow(t *testing.T) {
	svc, err := NewService(&stubTimeslotsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateTimeslotInput{
		Name:      "Evening",
		StartTime: mustTime(t, "17:00"),
		EndTime:   mustTime(t, "09:00"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// equal bounds are rejected too
	_, err = svc.Create(context.Background(), CreateTimeslotInput{
		Name:      "Zero",
		StartTime: mustTime(t, "09:00"),
		EndTime:   mustTime(t, "09:00"),
	})
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for zero-length window, got %v", err)
	}
}

func TestCreateTimeslotPersists(t *testing.T) {
	repo := &stubTimeslotsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateTimeslotInput{
		Name:      "Morning",
		StartTime: mustTime(t, "08:00"),
		EndTime:   mustTime(t, "12:00"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if repo.created == nil || created.Name != "Morning" {
		t.Fatalf("timeslot was not persisted: %+v", created)
	}
}

func TestFindOneTimeslotNotFound(t *testing.T) {
	svc, err := NewService(&stubTimeslotsRepo{timeslots: map[uuid.UUID]*models.Timeslot{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.FindOne(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
