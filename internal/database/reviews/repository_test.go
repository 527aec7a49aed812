package reviews

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
	dbPath := "./test_reviews_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Review{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_GetSummary_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	summary, err := repo.GetSummary(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, int64(0), summary.ReviewCount)
}

func TestRepository_GetSummary(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateReview(&entities.Review{UserID: 1, BookID: 1, Rating: 5}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: 2, BookID: 1, Rating: 4}))
	require.NoError(t, repo.CreateReview(&entities.Review{UserID: 3, BookID: 2, Rating: 1}))

	summary, err := repo.GetSummary(1)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
	assert.Equal(t, int64(2), summary.ReviewCount)
}

func TestRepository_ListByBook_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := entities.Review{UserID: 1, BookID: 1, Rating: 3, Comment: "first"}
	require.NoError(t, repo.CreateReview(&first))
	second := entities.Review{UserID: 2, BookID: 1, Rating: 5, Comment: "second"}
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.CreateReview(&second))

	reviews, total, err := repo.ListByBook(1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, "second", reviews[0].Comment)
	assert.Equal(t, "first", reviews[1].Comment)
}

func TestRepository_DeleteReview_Missing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteReview(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpdateReview(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	review := entities.Review{UserID: 1, BookID: 1, Rating: 2, Comment: "meh"}
	require.NoError(t, repo.CreateReview(&review))

	review.Rating = 4
	review.Comment = "grew on us"
	require.NoError(t, repo.UpdateReview(&review))

	reloaded, err := repo.GetReviewByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Rating)
	assert.Equal(t, "grew on us", reloaded.Comment)
}
