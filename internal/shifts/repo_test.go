package shifts

import (
	"context"
	"testing"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSchema = `
CREATE TABLE timeslots (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE shifts (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	timeslot_id TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'OPEN',
	required_staff INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'USER',
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE assignments (
	id TEXT PRIMARY KEY,
	shift_id TEXT NOT NULL,
	user_id TEXT,
	status TEXT NOT NULL DEFAULT 'ASSIGNED',
	unavailable_reason TEXT,
	marked_unavailable_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE UNIQUE INDEX idx_assignments_shift_user ON assignments (shift_id, user_id);
`

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(testSchema).Error)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedTimeslot(t *testing.T, db *gorm.DB) *models.Timeslot {
	t.Helper()
	start, err := types.ParseTimeOfDay("08:00")
	require.NoError(t, err)
	end, err := types.ParseTimeOfDay("16:00")
	require.NoError(t, err)
	ts := &models.Timeslot{
		ID:        uuid.New(),
		Name:      "Day",
		StartTime: start,
		EndTime:   end,
	}
	require.NoError(t, db.Create(ts).Error)
	return ts
}

func seedShift(t *testing.T, db *gorm.DB, timeslotID uuid.UUID, date string, status enums.ShiftStatus) *models.Shift {
	t.Helper()
	d, err := types.ParseDate(date)
	require.NoError(t, err)
	shift := &models.Shift{
		ID:            uuid.New(),
		Date:          d,
		TimeslotID:    timeslotID,
		Status:        status,
		RequiredStaff: 1,
	}
	require.NoError(t, db.Create(shift).Error)
	return shift
}

func TestRepositoryFindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ts := seedTimeslot(t, db)
	other := seedTimeslot(t, db)

	seedShift(t, db, ts.ID, "2026-03-10", enums.ShiftStatusOpen)
	seedShift(t, db, ts.ID, "2026-03-12", enums.ShiftStatusAssigned)
	seedShift(t, db, other.ID, "2026-03-11", enums.ShiftStatusOpen)

	// range filter
	start, _ := types.ParseDate("2026-03-11")
	end, _ := types.ParseDate("2026-03-12")
	got, err := repo.FindAll(context.Background(), Filter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2026-03-11", got[0].Date.String())
	require.Equal(t, "2026-03-12", got[1].Date.String())

	// exact date wins over range
	exact, _ := types.ParseDate("2026-03-10")
	got, err = repo.FindAll(context.Background(), Filter{Date: &exact, StartDate: &start})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "2026-03-10", got[0].Date.String())

	// timeslot + status combine
	status := enums.ShiftStatusOpen
	got, err = repo.FindAll(context.Background(), Filter{TimeslotID: &ts.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, ts.ID, got[0].TimeslotID)
}

func TestRepositoryFindAllPreloadsTimeslot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ts := seedTimeslot(t, db)
	seedShift(t, db, ts.ID, "2026-03-10", enums.ShiftStatusOpen)

	got, err := repo.FindAll(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Timeslot)
	require.Equal(t, "Day", got[0].Timeslot.Name)
}

func TestRepositoryFindOpen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ts := seedTimeslot(t, db)

	seedShift(t, db, ts.ID, "2026-03-09", enums.ShiftStatusOpen)
	seedShift(t, db, ts.ID, "2026-03-10", enums.ShiftStatusOpen)
	seedShift(t, db, ts.ID, "2026-03-11", enums.ShiftStatusAssigned)
	seedShift(t, db, ts.ID, "2026-03-12", enums.ShiftStatusOpen)

	from, _ := types.ParseDate("2026-03-10")
	got, err := repo.FindOpen(context.Background(), nil, from)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2026-03-10", got[0].Date.String())
	require.Equal(t, "2026-03-12", got[1].Date.String())

	day, _ := types.ParseDate("2026-03-09")
	got, err = repo.FindOpen(context.Background(), &day, from)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "2026-03-09", got[0].Date.String())
}

func TestRepositoryCreateBatchRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ts := seedTimeslot(t, db)

	dupe := uuid.New()
	d, _ := types.ParseDate("2026-03-10")
	batch := []*models.Shift{
		{ID: uuid.New(), Date: d, TimeslotID: ts.ID, Status: enums.ShiftStatusOpen, RequiredStaff: 1},
		{ID: dupe, Date: d, TimeslotID: ts.ID, Status: enums.ShiftStatusOpen, RequiredStaff: 1},
		{ID: dupe, Date: d, TimeslotID: ts.ID, Status: enums.ShiftStatusOpen, RequiredStaff: 1},
	}
	err := repo.CreateBatch(context.Background(), batch)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Shift{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRepositoryUpdateAndDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.Update(context.Background(), uuid.New(), map[string]interface{}{"required_staff": 2})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
