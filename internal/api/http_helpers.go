package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func apiMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"msg": message})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
