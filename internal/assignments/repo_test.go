package assignments

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

func seedShift(t *testing.T, db *gorm.DB, date string, status enums.ShiftStatus, requiredStaff int) *models.Shift {
	t.Helper()
	d, err := types.ParseDate(date)
	require.NoError(t, err)
	shift := &models.Shift{
		ID:            uuid.New(),
		Date:          d,
		TimeslotID:    uuid.New(),
		Status:        status,
		RequiredStaff: requiredStaff,
	}
	require.NoError(t, db.Create(shift).Error)
	return shift
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Email: email,
		Role:  enums.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAssignment(t *testing.T, db *gorm.DB, shiftID, userID uuid.UUID, status enums.AssignmentStatus) *models.Assignment {
	t.Helper()
	uid := userID
	a := &models.Assignment{
		ID:      uuid.New(),
		ShiftID: shiftID,
		UserID:  &uid,
		Status:  status,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestRepositoryCountAssignedIgnoresInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	shift := seedShift(t, db, "2026-03-15", enums.ShiftStatusOpen, 3)

	seedAssignment(t, db, shift.ID, uuid.New(), enums.AssignmentStatusAssigned)
	seedAssignment(t, db, shift.ID, uuid.New(), enums.AssignmentStatusUnavailable)
	seedAssignment(t, db, shift.ID, uuid.New(), enums.AssignmentStatusCompleted)

	count, err := repo.CountAssigned(context.Background(), shift.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRepositoryPairExistsAnyStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	shift := seedShift(t, db, "2026-03-15", enums.ShiftStatusOpen, 1)
	user := seedUser(t, db, "casey@example.com")

	seedAssignment(t, db, shift.ID, user.ID, enums.AssignmentStatusUnavailable)

	exists, err := repo.PairExists(context.Background(), shift.ID, user.ID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.PairExists(context.Background(), shift.ID, uuid.New())
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRepositoryUniquePairViolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	shift := seedShift(t, db, "2026-03-15", enums.ShiftStatusOpen, 2)
	user := seedUser(t, db, "casey@example.com")

	uid := user.ID
	_, err := repo.Create(context.Background(), &models.Assignment{
		ID: uuid.New(), ShiftID: shift.ID, UserID: &uid, Status: enums.AssignmentStatusAssigned,
	})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &models.Assignment{
		ID: uuid.New(), ShiftID: shift.ID, UserID: &uid, Status: enums.AssignmentStatusUnavailable,
	})
	require.Error(t, err)
}

func TestRepositoryFindDateFilterJoinsShifts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := seedUser(t, db, "casey@example.com")

	early := seedShift(t, db, "2026-03-11", enums.ShiftStatusOpen, 1)
	late := seedShift(t, db, "2026-03-14", enums.ShiftStatusOpen, 1)
	outside := seedShift(t, db, "2026-03-20", enums.ShiftStatusOpen, 1)

	// insertion order is late, early, outside; date ordering must win
	seedAssignment(t, db, late.ID, user.ID, enums.AssignmentStatusAssigned)
	seedAssignment(t, db, early.ID, user.ID, enums.AssignmentStatusAssigned)
	seedAssignment(t, db, outside.ID, user.ID, enums.AssignmentStatusAssigned)

	start, _ := types.ParseDate("2026-03-10")
	end, _ := types.ParseDate("2026-03-16")
	got, err := repo.Find(context.Background(), Filter{
		UserID:    &user.ID,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, early.ID, got[0].ShiftID)
	require.Equal(t, late.ID, got[1].ShiftID)
	require.NotNil(t, got[0].Shift)
	require.Equal(t, "2026-03-11", got[0].Shift.Date.String())
}

func TestRepositoryFindFiltersByStatusAndShift(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	shift := seedShift(t, db, "2026-03-15", enums.ShiftStatusOpen, 2)
	other := seedShift(t, db, "2026-03-16", enums.ShiftStatusOpen, 1)

	seedAssignment(t, db, shift.ID, uuid.New(), enums.AssignmentStatusAssigned)
	seedAssignment(t, db, shift.ID, uuid.New(), enums.AssignmentStatusUnavailable)
	seedAssignment(t, db, other.ID, uuid.New(), enums.AssignmentStatusAssigned)

	status := enums.AssignmentStatusAssigned
	got, err := repo.Find(context.Background(), Filter{ShiftID: &shift.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, shift.ID, got[0].ShiftID)
}

func TestRepositoryUpdateShiftStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	shift := seedShift(t, db, "2026-03-15", enums.ShiftStatusOpen, 1)

	require.NoError(t, repo.UpdateShiftStatus(context.Background(), shift.ID, enums.ShiftStatusAssigned))

	var reloaded models.Shift
	require.NoError(t, db.Where("id = ?", shift.ID).First(&reloaded).Error)
	require.Equal(t, enums.ShiftStatusAssigned, reloaded.Status)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
