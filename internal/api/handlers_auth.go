package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/services"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Hour
)

// Login exchanges a username/password form for a bearer token plus the
// user's profile configuration.
func (handler *Handler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return apiError(c, fiber.StatusBadRequest, "username and password are required")
	}

	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many failed login attempts")
	}

	user, err := handler.authService.Authenticate(username, password)
	if err != nil {
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
		return apiError(c, fiber.StatusBadRequest, "incorrect username or password")
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(&user, handler.config.TokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user_config":  userConfigPayload(&user),
	})
}

// Register creates a regular account. Admin-gated via routing.
func (handler *Handler) Register(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return apiError(c, fiber.StatusBadRequest, "username and password are required")
	}

	if _, err := handler.authService.RegisterUser(username, password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return apiError(c, fiber.StatusBadRequest, "username already exists")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create user")
	}

	return apiMessage(c, "user created")
}
