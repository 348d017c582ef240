package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/roster-backend/pkg/db/models"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'USER',
	created_at DATETIME,
	updated_at DATETIME
);
`

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
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

func seedUsers(t *testing.T, db *gorm.DB, n int) []*models.User {
	t.Helper()
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			ID:        uuid.New(),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			Role:      enums.UserRoleUser,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(user).Error)
		users = append(users, user)
	}
	return users
}

func TestRepositoryFindPageCursorsThrough(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	seeded := seedUsers(t, db, 5)

	first, next, err := repo.FindPage(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)
	// newest first
	require.Equal(t, seeded[4].Email, first[0].Email)
	require.Equal(t, seeded[3].Email, first[1].Email)

	second, next, err := repo.FindPage(context.Background(), pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Equal(t, seeded[2].Email, second[0].Email)
	require.NotEmpty(t, next)

	last, next, err := repo.FindPage(context.Background(), pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, seeded[0].Email, last[0].Email)
	require.Empty(t, next)
}

func TestRepositoryFindPageRejectsBadCursor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, _, err := repo.FindPage(context.Background(), pagination.Params{Cursor: "not-base64!"})
	require.Error(t, err)
}

func TestRepositoryUpdateMissingUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.Update(context.Background(), uuid.New(), map[string]interface{}{"first_name": "Casey"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
