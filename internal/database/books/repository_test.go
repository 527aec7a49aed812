package books

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
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Theme{},
		&entities.Book{},
		&entities.BookTheme{},
		&entities.BookPage{},
		&entities.BookTocItem{},
		&entities.Review{},
		&entities.Favorite{},
		&entities.ReadingProgress{},
		&entities.Bookmark{},
		&entities.Note{},
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

func createThemes(t *testing.T, db *gorm.DB, names ...string) []uint {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		theme := entities.Theme{Name: name, Category: entities.ThemeCategorySelf}
		require.NoError(t, db.Create(&theme).Error)
		ids = append(ids, theme.ID)
	}
	return ids
}

func linkedThemeIDs(t *testing.T, db *gorm.DB, bookID uint) []uint {
	var ids []uint
	require.NoError(t, db.Model(&entities.BookTheme{}).
		Where("book_id = ?", bookID).
		Order("theme_id ASC").
		Pluck("theme_id", &ids).Error)
	return ids
}

func TestRepository_CreateBook_WithThemes(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage", "Nature")

	book := entities.Book{Title: "Brave Bear", Author: "A. Author", TotalPages: 24}
	require.NoError(t, repo.CreateBook(&book, themeIDs))
	assert.NotZero(t, book.ID)

	assert.Equal(t, themeIDs, linkedThemeIDs(t, db, book.ID))
}

func TestRepository_CreateBook_UnknownTheme(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Brave Bear"}
	err := repo.CreateBook(&book, []uint{999})
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)

	// Insert rolled back
	var count int64
	require.NoError(t, db.Model(&entities.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_UpdateBook_ThemeDiff(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage", "Nature", "Kindness")

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, []uint{themeIDs[0], themeIDs[1]}))

	// Replace Nature with Kindness, keep Courage
	require.NoError(t, repo.UpdateBook(&book, []uint{themeIDs[0], themeIDs[2]}))
	assert.Equal(t, []uint{themeIDs[0], themeIDs[2]}, linkedThemeIDs(t, db, book.ID))
}

func TestRepository_UpdateBook_SameThemes_NoChange(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage", "Nature")

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, themeIDs))

	// Same set in different order leaves links untouched
	require.NoError(t, repo.UpdateBook(&book, []uint{themeIDs[1], themeIDs[0]}))
	assert.Equal(t, themeIDs, linkedThemeIDs(t, db, book.ID))
}

func TestRepository_UpdateBook_NilThemes_KeepsLinks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage")

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, themeIDs))

	book.Title = "Braver Bear"
	require.NoError(t, repo.UpdateBook(&book, nil))
	assert.Equal(t, themeIDs, linkedThemeIDs(t, db, book.ID))
}

func TestRepository_UpdateBook_EmptyThemes_ClearsLinks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage")

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, themeIDs))

	require.NoError(t, repo.UpdateBook(&book, []uint{}))
	assert.Empty(t, linkedThemeIDs(t, db, book.ID))
}

func TestRepository_ListBooks_ThemeFilter(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage")

	tagged := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&tagged, themeIDs))
	plain := entities.Book{Title: "Quiet Cat"}
	require.NoError(t, repo.CreateBook(&plain, nil))

	all, total, err := repo.ListBooks(0, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	filtered, total, err := repo.ListBooks(themeIDs[0], 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Brave Bear", filtered[0].Title)
}

func TestRepository_ListBooks_Pagination(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, title := range []string{"One", "Two", "Three"} {
		book := entities.Book{Title: title}
		require.NoError(t, repo.CreateBook(&book, nil))
	}

	page, total, err := repo.ListBooks(0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	rest, _, err := repo.ListBooks(0, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRepository_DeleteBook_Cascades(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	themeIDs := createThemes(t, db, "Courage")
	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, themeIDs))

	require.NoError(t, repo.CreatePage(&entities.BookPage{BookID: book.ID, PageNumber: 1}))
	require.NoError(t, repo.CreateTocItem(&entities.BookTocItem{BookID: book.ID, Title: "Start", PageNumber: 1}))
	require.NoError(t, db.Create(&entities.Review{UserID: 1, BookID: book.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: 1, BookID: book.ID}).Error)
	progress := entities.ReadingProgress{UserID: 1, BookID: book.ID, CurrentPage: 1}
	require.NoError(t, db.Create(&progress).Error)
	require.NoError(t, db.Create(&entities.Bookmark{ProgressID: progress.ID, PageNumber: 2}).Error)
	require.NoError(t, db.Create(&entities.Note{ProgressID: progress.ID, PageNumber: 2, Content: "n"}).Error)

	require.NoError(t, repo.DeleteBook(book.ID))

	for _, model := range []any{
		&entities.BookTheme{}, &entities.BookPage{}, &entities.BookTocItem{},
		&entities.Review{}, &entities.Favorite{}, &entities.ReadingProgress{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("book_id = ?", book.ID).Count(&count).Error)
		assert.Zero(t, count)
	}

	var orphaned int64
	require.NoError(t, db.Model(&entities.Bookmark{}).Where("progress_id = ?", progress.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestRepository_ListPages_OrderedByPageNumber(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, nil))

	require.NoError(t, repo.CreatePage(&entities.BookPage{BookID: book.ID, PageNumber: 3}))
	require.NoError(t, repo.CreatePage(&entities.BookPage{BookID: book.ID, PageNumber: 1}))

	pages, err := repo.ListPages(book.ID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, 3, pages[1].PageNumber)
}

func TestRepository_DeletePage_WrongBook(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Brave Bear"}
	require.NoError(t, repo.CreateBook(&book, nil))

	page := entities.BookPage{BookID: book.ID, PageNumber: 1}
	require.NoError(t, repo.CreatePage(&page))

	err := repo.DeletePage(page.ID, book.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_RecomputePopularityScores(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	popular := entities.Book{Title: "Crowd Pleaser"}
	require.NoError(t, repo.CreateBook(&popular, nil))
	quiet := entities.Book{Title: "Hidden Gem"}
	require.NoError(t, repo.CreateBook(&quiet, nil))

	require.NoError(t, db.Create(&entities.Favorite{UserID: 1, BookID: popular.ID}).Error)
	require.NoError(t, db.Create(&entities.Favorite{UserID: 2, BookID: popular.ID}).Error)
	require.NoError(t, db.Create(&entities.Review{UserID: 1, BookID: popular.ID, Rating: 4}).Error)

	updated, err := repo.RecomputePopularityScores()
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	refreshed, err := repo.GetBookByID(popular.ID)
	require.NoError(t, err)
	// 2 favorites * 2.0 + 1 review * 1.0 + avg rating 4 * 0.5
	assert.InDelta(t, 7.0, refreshed.PopularityScore, 0.001)

	unchanged, err := repo.GetBookByID(quiet.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.PopularityScore)
}
