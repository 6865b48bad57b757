package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"familyservices/internal/models"
)

func TestValidateChildPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload childPayload
		valid   bool
	}{
		{"valid", childPayload{FirstName: "Alex", LastName: "Family", Age: 6}, true},
		{"empty first name", childPayload{FirstName: "", Age: 6}, false},
		{"age too high", childPayload{FirstName: "Alex", Age: 99}, false},
		{"negative age", childPayload{FirstName: "Alex", Age: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := validateChildPayload(tt.payload)
			if valid != tt.valid {
				t.Errorf("valid = %v, want %v", valid, tt.valid)
			}
			if !tt.valid && msg == "" {
				t.Error("expected a validation message for invalid payload")
			}
		})
	}
}

// An invalid child payload must stop the handler at validation; the
// handlers below never touch the database on the rejection path, so a
// nil store is enough to prove they bail out with a 400.
func TestChildHandlersRejectInvalidPayload(t *testing.T) {
	h := NewChildHandler(nil)

	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.Locals("user", &models.User{IsActive: true})
		return c.Next()
	})
	app.Post("/add-child-direct", h.AddDirect)
	app.Post("/update-child-direct/:id", h.UpdateDirect)
	app.Post("/add-child", h.RequestAdd)
	app.Post("/update-child", h.RequestUpdate)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"direct add empty name", "/add-child-direct", `{"first_name": "", "age": 6}`},
		{"direct add age out of range", "/add-child-direct", `{"first_name": "Alex", "age": 99}`},
		{"direct update empty name", "/update-child-direct/6f1c1f6e-0000-4000-8000-000000000001", `{"first_name": "", "age": 6}`},
		{"staged add empty name", "/add-child", `{"first_name": "", "age": 6}`},
		{"staged update age out of range", "/update-child", `{"child_id": "not-checked", "first_name": "Alex", "age": 99}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
			}
		})
	}
}
