package auth

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/config"
	"github.com/ehonlab/ehon-server/internal/database/users"
	"github.com/ehonlab/ehon-server/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Service implements registration, login and credential changes on top of
// the users repository.
type Service struct {
	users  *users.Repository
	tokens *TokenManager
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(usersRepo *users.Repository, tokens *TokenManager, cfg config.Auth) *Service {
	return &Service{
		users:  usersRepo,
		tokens: tokens,
		config: cfg,
	}
}

// Register creates an account with its settings and optional child profiles,
// then issues a token for it.
func (s *Service) Register(email, password, name string, children []entities.Child) (*entities.User, string, error) {
	if !emailRegex.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Tier:         entities.UserTierFree,
		IsActive:     true,
	}
	user, err = s.users.CreateUser(user, children)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, "", ErrEmailTaken
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*entities.User, string, error) {
	user, err := s.users.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateToken parses a bearer token and loads its user.
func (s *Service) ValidateToken(tokenString string) (*entities.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// ChangeEmail updates the account email after verifying the password.
func (s *Service) ChangeEmail(userID uint, newEmail, password string) (*entities.User, error) {
	if !emailRegex.MatchString(newEmail) {
		return nil, ErrInvalidEmail
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Email = newEmail
	err = s.users.UpdateUser(user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := CheckPassword(currentPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.UpdateUser(user)
}
