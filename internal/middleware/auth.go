package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"familyservices/internal/db"
	"familyservices/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAuth ensures the request carries a valid session and loads the user
// into c.Locals("user"). Deactivated accounts are logged out.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	rawID, ok := sess.Get("user_id").(string)
	if !ok || rawID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		sess.Destroy()
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	user, err := m.db.GetUserByID(c.Context(), userID)
	if err != nil {
		sess.Destroy()
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	if !user.IsActive {
		sess.Destroy()
		return fiber.NewError(fiber.StatusForbidden, "account is deactivated")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the authenticated user has the admin role.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if !user.IsAdmin {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}
