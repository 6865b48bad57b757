package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"

	"familyservices/internal/models"
)

// RequireAdmin reads only from request locals, so it can be exercised
// without a database.
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"admin passes", &models.User{IsAdmin: true}, fiber.StatusOK},
		{"family forbidden", &models.User{IsAdmin: false}, fiber.StatusForbidden},
		{"anonymous unauthorized", nil, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(nil)

			app := fiber.New()
			app.Use(func(c fiber.Ctx) error {
				if tt.user != nil {
					c.Locals("user", tt.user)
				}
				return c.Next()
			})
			app.Use(m.RequireAdmin)
			app.Get("/admin", func(c fiber.Ctx) error {
				return c.SendString("ok")
			})

			req, _ := http.NewRequest("GET", "/admin", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
