package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/memento/internal/models"
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// authenticateRequest resolves the bearer credential on a protected
// call to a live user record.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func userConfigPayload(user *models.User) fiber.Map {
	var dob any
	if user.DOB != nil {
		dob = user.DOB.Format("2006-01-02")
	}
	return fiber.Map{
		"dob":             dob,
		"life_expectancy": user.LifeExpectancy,
		"is_admin":        user.IsAdmin,
		"nickname":        user.Nickname,
		"avatar_url":      user.AvatarURL,
	}
}
