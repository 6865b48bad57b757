package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"familyservices/internal/db"
	"familyservices/internal/models"
)

// ServicesHandler manages service preference updates.
type ServicesHandler struct {
	db *db.DB
}

// NewServicesHandler creates a new services handler.
func NewServicesHandler(database *db.DB) *ServicesHandler {
	return &ServicesHandler{db: database}
}

// UpdateDirect overwrites the user's service preference flags immediately.
// Requires an existing preferences row from registration.
func (h *ServicesHandler) UpdateDirect(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var data models.ServiceUpdateData
	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.UpdateServices(c.Context(), user.ID, data); err != nil {
		if errors.Is(err, db.ErrServicesNotFound) {
			return jsonError(c, fiber.StatusNotFound, "service preferences not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update services")
	}

	return jsonSuccess(c, "services updated", nil)
}

// RequestUpdate stages a service preference change for admin review.
func (h *ServicesHandler) RequestUpdate(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var data models.ServiceUpdateData
	if err := json.Unmarshal(c.Body(), &data); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	req, err := h.db.CreateUpdateRequest(c.Context(), user.ID, data)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit update request")
	}

	return jsonCreated(c, "update request submitted for review", fiber.Map{"request": req})
}
