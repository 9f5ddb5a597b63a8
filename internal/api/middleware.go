package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terramonte/ridgeline/internal/models"
)

type authClaims struct {
	AdminID uint `json:"aid"`
	jwt.RegisteredClaims
}

func (handler *Handler) issueAuthToken(adminID uint) (string, error) {
	now := time.Now()
	claims := authClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.AdminUser, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("missing auth cookie")
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

	admin, err := handler.auth.FindByID(claims.AdminID)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	admin, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextAdminKey, admin)
	return c.Next()
}

func currentAdmin(c *fiber.Ctx) (*models.AdminUser, bool) {
	admin, ok := c.Locals(contextAdminKey).(*models.AdminUser)
	return admin, ok
}
