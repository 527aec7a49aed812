package themes

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
	dbPath := "./test_themes_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Theme{}, &entities.Book{}, &entities.BookTheme{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_CreateTheme_DuplicateName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateTheme(&entities.Theme{Name: "Kindness", Category: entities.ThemeCategoryOthers}))

	err := repo.CreateTheme(&entities.Theme{Name: "Kindness", Category: entities.ThemeCategoryOthers})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_ListThemes_OrderedByName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateTheme(&entities.Theme{Name: "Nature", Category: entities.ThemeCategoryWorld}))
	require.NoError(t, repo.CreateTheme(&entities.Theme{Name: "Courage", Category: entities.ThemeCategorySelf}))

	themes, err := repo.ListThemes()
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "Courage", themes[0].Name)
	assert.Equal(t, "Nature", themes[1].Name)
}

func TestRepository_ListThemesWithBookCounts(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	courage := entities.Theme{Name: "Courage", Category: entities.ThemeCategorySelf}
	nature := entities.Theme{Name: "Nature", Category: entities.ThemeCategoryWorld}
	require.NoError(t, repo.CreateTheme(&courage))
	require.NoError(t, repo.CreateTheme(&nature))

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Create(&entities.BookTheme{BookID: book.ID, ThemeID: courage.ID}).Error)

	rows, err := repo.ListThemesWithBookCounts()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Courage", rows[0].Name)
	assert.Equal(t, int64(1), rows[0].BookCount)
	assert.Equal(t, int64(0), rows[1].BookCount)
}

func TestRepository_DeleteTheme_RemovesLinks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	theme := entities.Theme{Name: "Courage", Category: entities.ThemeCategorySelf}
	require.NoError(t, repo.CreateTheme(&theme))

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Create(&entities.BookTheme{BookID: book.ID, ThemeID: theme.ID}).Error)

	require.NoError(t, repo.DeleteTheme(theme.ID))

	var links int64
	require.NoError(t, db.Model(&entities.BookTheme{}).Where("theme_id = ?", theme.ID).Count(&links).Error)
	assert.Zero(t, links)

	// Book itself survives
	var books int64
	require.NoError(t, db.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(1), books)
}

func TestRepository_DeleteTheme_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteTheme(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListBooksByTheme(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	theme := entities.Theme{Name: "Nature", Category: entities.ThemeCategoryWorld}
	require.NoError(t, repo.CreateTheme(&theme))

	linked := entities.Book{Title: "Forest Walk"}
	other := entities.Book{Title: "City Lights"}
	require.NoError(t, db.Create(&linked).Error)
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&entities.BookTheme{BookID: linked.ID, ThemeID: theme.ID}).Error)

	books, total, err := repo.ListBooksByTheme(theme.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Forest Walk", books[0].Title)
}
