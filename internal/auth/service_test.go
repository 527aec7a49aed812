package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ehonlab/ehon-server/internal/config"
	"github.com/ehonlab/ehon-server/internal/database/users"
	"github.com/ehonlab/ehon-server/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.UserSettings{}, &entities.Child{})
	require.NoError(t, err)

	cfg := config.Auth{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  4, // Minimum cost keeps the tests fast
	}
	service := NewService(users.NewRepository(db), NewTokenManager(cfg.TokenSecret, cfg.TokenExpiry), cfg)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestService_Register(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	user, token, err := service.Register("parent@example.com", "password123", "Parent", []entities.Child{{Name: "Mia", Age: 5}})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.UserTierFree, user.Tier)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.Settings)
	require.Len(t, user.Children, 1)

	// Token round-trips to the same user
	validated, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
}

func TestService_Register_EmailTaken(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	_, _, err := service.Register("dup@example.com", "password123", "One", nil)
	require.NoError(t, err)

	_, _, err = service.Register("dup@example.com", "password123", "Two", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_InvalidInput(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	_, _, err := service.Register("not-an-email", "password123", "X", nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = service.Register("ok@example.com", "short", "X", nil)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_Login(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	_, _, err := service.Register("login@example.com", "password123", "X", nil)
	require.NoError(t, err)

	user, token, err := service.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.com", user.Email)

	_, _, err = service.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ValidateToken_Garbage(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_ChangeEmail(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	user, _, err := service.Register("old@example.com", "password123", "X", nil)
	require.NoError(t, err)

	_, err = service.ChangeEmail(user.ID, "new@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	updated, err := service.ChangeEmail(user.ID, "new@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestService_ChangePassword(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()

	user, _, err := service.Register("pw@example.com", "password123", "X", nil)
	require.NoError(t, err)

	require.NoError(t, service.ChangePassword(user.ID, "password123", "password456"))

	_, _, err = service.Login("pw@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login("pw@example.com", "password456")
	assert.NoError(t, err)
}

func TestTokenManager_Expiry(t *testing.T) {
	tokens := NewTokenManager("secret", -time.Minute)

	token, err := tokens.Issue(1, "x@example.com")
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
