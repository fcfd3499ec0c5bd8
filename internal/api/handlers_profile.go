package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type profileUpdateInput struct {
	DOB            string  `json:"dob"`
	LifeExpectancy *int    `json:"life_expectancy"`
	Nickname       *string `json:"nickname"`
	AvatarURL      *string `json:"avatar_url"`
}

// UpdateProfile updates the caller's birth date, life expectancy, and
// optional display fields.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	dob, err := services.ParseISODate(strings.TrimSpace(input.DOB))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date format")
	}

	user.DOB = &dob
	user.LifeExpectancy = 100
	if input.LifeExpectancy != nil {
		user.LifeExpectancy = *input.LifeExpectancy
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := handler.repositories.Users.Save(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return c.JSON(fiber.Map{
		"msg":         "profile updated",
		"user_config": userConfigPayload(user),
	})
}

type changePasswordInput struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := services.ValidatePasswordChange(user.PasswordHash, input.OldPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return apiError(c, fiber.StatusBadRequest, passwordChangeErrorMessage(err))
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.NewPassword)), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	if err := handler.repositories.Users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}

	return apiMessage(c, "password updated")
}

func passwordChangeErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidOldPassword):
		return "old password is incorrect"
	case errors.Is(err, services.ErrPasswordMismatch):
		return "new password and confirmation do not match"
	case errors.Is(err, services.ErrPasswordTooShort):
		return "new password must be at least 8 characters"
	default:
		return "old, new, and confirm passwords are required"
	}
}
