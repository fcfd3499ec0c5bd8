package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/models"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.IsAdmin {
		return apiError(c, fiber.StatusForbidden, "admin privileges required")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
