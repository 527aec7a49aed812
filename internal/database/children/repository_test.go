package children

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

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_children_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Child{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateChild(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	child := &entities.Child{UserID: 1, Name: "Mia", Age: 5, Interests: []string{"dinosaurs", "space"}}
	require.NoError(t, repo.CreateChild(child))
	assert.NotZero(t, child.ID)

	loaded, err := repo.GetChild(child.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mia", loaded.Name)
	assert.Equal(t, []string{"dinosaurs", "space"}, []string(loaded.Interests))
}

func TestRepository_GetChild_OtherUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	child := &entities.Child{UserID: 1, Name: "Mia", Age: 5}
	require.NoError(t, repo.CreateChild(child))

	_, err := repo.GetChild(child.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListChildren_ScopedToUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.CreateChild(&entities.Child{UserID: 1, Name: "Mia", Age: 5}))
	require.NoError(t, repo.CreateChild(&entities.Child{UserID: 1, Name: "Leo", Age: 7}))
	require.NoError(t, repo.CreateChild(&entities.Child{UserID: 2, Name: "Sam", Age: 6}))

	children, err := repo.ListChildren(1)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Mia", children[0].Name)
	assert.Equal(t, "Leo", children[1].Name)
}

func TestRepository_DeleteChild(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	child := &entities.Child{UserID: 1, Name: "Mia", Age: 5}
	require.NoError(t, repo.CreateChild(child))

	// Wrong owner cannot delete
	err := repo.DeleteChild(child.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteChild(child.ID, 1))

	_, err = repo.GetChild(child.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
