// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"log"
	"strings"

	"campuskart/internal/models"
	"campuskart/internal/services/auth"
	"campuskart/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates bearer session tokens and resolves them back to
// a stored user record. A token alone never implies the account is
// verified; handlers that need that check the resolved user.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler rejects requests without a valid token and stores the resolved
// user in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}

	user, err := m.authService.GetUser(claims.UserID)
	if err != nil {
		log.Printf("user %d from token not found", claims.UserID)
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("user", user)
	c.Locals("userID", user.ID)
	return c.Next()
}

// CurrentUser returns the user resolved by Handler, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
