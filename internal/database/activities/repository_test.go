package activities

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ehonlab/ehon-server/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_activities_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.LearningActivity{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_ListByUser_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	older := entities.LearningActivity{UserID: 1, ActivityType: entities.ActivityNoteTaken}
	older.CreatedAt = now.Add(-time.Hour)
	require.NoError(t, repo.Record(&older))
	newer := entities.LearningActivity{UserID: 1, ActivityType: entities.ActivityBadgeEarned}
	newer.CreatedAt = now
	require.NoError(t, repo.Record(&newer))
	other := entities.LearningActivity{UserID: 2, ActivityType: entities.ActivityReviewPosted}
	require.NoError(t, repo.Record(&other))

	activities, total, err := repo.ListByUser(1, 0, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, activities, 2)
	assert.Equal(t, entities.ActivityBadgeEarned, activities[0].ActivityType)
	assert.Equal(t, entities.ActivityNoteTaken, activities[1].ActivityType)
}

func TestRepository_ListByUser_ChildFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Record(&entities.LearningActivity{UserID: 1, ChildID: 3, ActivityType: entities.ActivityBookReadCompleted}))
	require.NoError(t, repo.Record(&entities.LearningActivity{UserID: 1, ChildID: 4, ActivityType: entities.ActivityQuestionAnswered}))

	activities, total, err := repo.ListByUser(1, 3, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, activities, 1)
	assert.Equal(t, uint(3), activities[0].ChildID)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := entities.LearningActivity{UserID: 1, ActivityType: entities.ActivityNoteTaken}
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Record(&old))
	recent := entities.LearningActivity{UserID: 1, ActivityType: entities.ActivityBadgeEarned}
	require.NoError(t, repo.Record(&recent))

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, total, err := repo.ListByUser(1, 0, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, remaining, 1)
	assert.Equal(t, entities.ActivityBadgeEarned, remaining[0].ActivityType)
}
