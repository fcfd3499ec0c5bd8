package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/images"
)

// UploadAvatar accepts a dedicated avatar file with its own type and
// size limits, stores the processed 200x200 JPEG, and persists the
// resulting URL on the caller.
func (handler *Handler) UploadAvatar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "avatar file is required")
	}

	data, err := readUpload(header)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "avatar file is unreadable")
	}

	avatarURL, err := handler.avatars.Process(user.ID, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrUnsupportedFormat):
			return apiError(c, fiber.StatusBadRequest, "unsupported image type, allowed: jpg, png, gif, webp")
		case errors.Is(err, images.ErrFileTooLarge):
			return apiError(c, fiber.StatusBadRequest, "avatar must not exceed 5 MB")
		default:
			return apiError(c, fiber.StatusInternalServerError, "avatar processing failed")
		}
	}

	if err := handler.repositories.Users.UpdateAvatarURL(user.ID, avatarURL); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save avatar")
	}

	return c.JSON(fiber.Map{
		"msg":        "avatar uploaded",
		"avatar_url": avatarURL,
	})
}
