package users

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ehonlab/ehon-server/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.UserSettings{},
		&entities.Child{},
		&entities.Review{},
		&entities.Favorite{},
		&entities.ReadingProgress{},
		&entities.Bookmark{},
		&entities.Note{},
		&entities.LearningActivity{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser(&entities.User{
		Email:        "parent@example.com",
		PasswordHash: "hash",
		Name:         "Parent",
	}, nil)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	require.NotNil(t, user.Settings)
	assert.Equal(t, user.ID, user.Settings.UserID)
}

func TestRepository_CreateUser_WithChildren(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser(&entities.User{Email: "p@example.com", PasswordHash: "h"}, []entities.Child{
		{Name: "Mia", Age: 5},
		{Name: "Leo", Age: 7},
	})

	require.NoError(t, err)
	require.Len(t, user.Children, 2)
	assert.Equal(t, user.ID, user.Children[0].UserID)
	assert.Equal(t, user.ID, user.Children[1].UserID)
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateUser(&entities.User{Email: "dup@example.com", PasswordHash: "h"}, nil)
	require.NoError(t, err)

	_, err = repo.CreateUser(&entities.User{Email: "dup@example.com", PasswordHash: "h"}, nil)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateUser(&entities.User{Email: "find@example.com", PasswordHash: "h"}, nil)
	require.NoError(t, err)

	found, err := repo.GetUserByEmail("find@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpdateSettings(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser(&entities.User{Email: "s@example.com", PasswordHash: "h"}, nil)
	require.NoError(t, err)

	settings, err := repo.GetSettings(user.ID)
	require.NoError(t, err)

	settings.NotifyNewsletter = true
	settings.NotifyBadges = false
	require.NoError(t, repo.UpdateSettings(settings))

	reloaded, err := repo.GetSettings(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.NotifyNewsletter)
	assert.False(t, reloaded.NotifyBadges)
}

func TestRepository_DeleteUser_Cascades(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser(&entities.User{Email: "del@example.com", PasswordHash: "h"}, []entities.Child{{Name: "Kid", Age: 4}})
	require.NoError(t, err)

	progress := entities.ReadingProgress{UserID: user.ID, BookID: 1, CurrentPage: 1}
	require.NoError(t, db.Create(&progress).Error)
	require.NoError(t, db.Create(&entities.Bookmark{ProgressID: progress.ID, PageNumber: 3}).Error)
	require.NoError(t, db.Create(&entities.Note{ProgressID: progress.ID, PageNumber: 3, Content: "note"}).Error)
	require.NoError(t, db.Create(&entities.Review{UserID: user.ID, BookID: 1, Rating: 4}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: user.ID, BookID: 1}).Error)
	require.NoError(t, db.Create(&entities.LearningActivity{UserID: user.ID, ActivityType: entities.ActivityNoteTaken}).Error)

	require.NoError(t, repo.DeleteUser(user.ID))

	_, err = repo.GetUserByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, model := range []any{
		&entities.UserSettings{}, &entities.Child{}, &entities.ReadingProgress{},
		&entities.Review{}, &entities.Favorite{}, &entities.LearningActivity{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Zero(t, count)
	}

	var orphaned int64
	require.NoError(t, db.Model(&entities.Bookmark{}).Where("progress_id = ?", progress.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned)
	require.NoError(t, db.Model(&entities.Note{}).Where("progress_id = ?", progress.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}
