package favorites

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_favorites_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Theme{}, &entities.BookTheme{}, &entities.Favorite{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_AddFavorite_Idempotent(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, db.Create(&book).Error)

	require.NoError(t, repo.AddFavorite(1, book.ID))

	var first entities.Favorite
	require.NoError(t, db.Where("user_id = ? AND book_id = ?", 1, book.ID).First(&first).Error)

	// Second add is a no-op and keeps the original timestamp
	require.NoError(t, repo.AddFavorite(1, book.ID))

	var count int64
	require.NoError(t, db.Model(&entities.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var after entities.Favorite
	require.NoError(t, db.Where("user_id = ? AND book_id = ?", 1, book.ID).First(&after).Error)
	assert.True(t, first.FavoritedAt.Equal(after.FavoritedAt))
}

func TestRepository_RemoveFavorite_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.RemoveFavorite(1, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_IsFavorite(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, db.Create(&book).Error)

	starred, err := repo.IsFavorite(1, book.ID)
	require.NoError(t, err)
	assert.False(t, starred)

	require.NoError(t, repo.AddFavorite(1, book.ID))

	starred, err = repo.IsFavorite(1, book.ID)
	require.NoError(t, err)
	assert.True(t, starred)
}

func TestRepository_ListFavoriteBooks_NewestFirst(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	older := entities.Book{Title: "Older Star"}
	newer := entities.Book{Title: "Newer Star"}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	now := time.Now()
	require.NoError(t, db.Create(&entities.Favorite{UserID: 1, BookID: older.ID, FavoritedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: 1, BookID: newer.ID, FavoritedAt: now}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: 2, BookID: older.ID, FavoritedAt: now}).Error)

	books, total, err := repo.ListFavoriteBooks(1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, books, 2)
	assert.Equal(t, "Newer Star", books[0].Book.Title)
	assert.Equal(t, "Older Star", books[1].Book.Title)
}
