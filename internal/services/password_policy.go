package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrPasswordMismatch           = errors.New("password confirmation mismatch")
	ErrInvalidOldPassword         = errors.New("invalid old password")
	ErrPasswordTooShort           = errors.New("password too short")
)

// ValidatePasswordChange checks an old/new/confirm triple against the
// stored hash before a password update is applied.
func ValidatePasswordChange(passwordHash string, oldPassword string, newPassword string, confirmPassword string) error {
	oldPassword = strings.TrimSpace(oldPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(oldPassword)) != nil {
		return ErrInvalidOldPassword
	}
	if len([]rune(newPassword)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
