package services

import (
	"log"

	"github.com/terraincognita07/memento/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type SetupUserRepository interface {
	CountUsers() (int64, error)
	Create(user *models.User) error
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

// EnsureDefaultAdmin bootstraps the first account on an empty users
// table and reports whether it created one.
func (service *SetupService) EnsureDefaultAdmin(username string, password string, dob string) (bool, error) {
	count, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := models.User{
		Username:       username,
		PasswordHash:   string(passwordHash),
		IsAdmin:        true,
		LifeExpectancy: models.DefaultLifeExpectancy,
	}
	if dob != "" {
		if parsed, err := ParseISODate(dob); err == nil {
			admin.DOB = &parsed
		} else {
			log.Printf("invalid default admin dob %q, leaving unset", dob)
		}
	}

	if err := service.users.Create(&admin); err != nil {
		return false, err
	}
	return true, nil
}
