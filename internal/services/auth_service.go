package services

import (
	"errors"

	"github.com/terraincognita07/memento/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthUserRepository interface {
	FindByUsername(username string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate verifies a username/password pair. The same error comes
// back for an unknown user and for a wrong password.
func (service *AuthService) Authenticate(username string, password string) (models.User, error) {
	user, err := service.users.FindByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// RegisterUser creates a regular (non-admin) account.
func (service *AuthService) RegisterUser(username string, password string) (models.User, error) {
	taken, err := service.users.ExistsByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:       username,
		PasswordHash:   string(passwordHash),
		IsAdmin:        false,
		LifeExpectancy: models.DefaultLifeExpectancy,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
