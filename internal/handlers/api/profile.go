package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"familyservices/internal/db"
	"familyservices/internal/models"
	"familyservices/internal/validation"
)

// ProfileHandler serves the family dashboard data and profile updates.
type ProfileHandler struct {
	db *db.DB
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(database *db.DB) *ProfileHandler {
	return &ProfileHandler{db: database}
}

// Show returns the authenticated user's profile with children, service
// preferences, masked payment details and recent update requests.
func (h *ProfileHandler) Show(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	children, err := h.db.GetChildrenByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if children == nil {
		children = []models.Child{}
	}

	services, err := h.db.GetServicesByUser(c.Context(), user.ID)
	if err != nil && !errors.Is(err, db.ErrServicesNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	var paymentView fiber.Map
	payment, err := h.db.GetPaymentByUser(c.Context(), user.ID)
	if err != nil && !errors.Is(err, db.ErrPaymentNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if payment != nil {
		paymentView = fiber.Map{
			"name_on_card": payment.NameOnCard,
			"card_number":  payment.MaskedCardNumber(),
			"expiry_date":  payment.ExpiryDate,
			"save_card":    payment.SaveCard,
		}
	}

	requests, err := h.db.GetRecentRequestsByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return jsonSuccess(c, "profile loaded", fiber.Map{
		"user":            user,
		"children":        children,
		"services":        services,
		"payment":         paymentView,
		"update_requests": requests,
	})
}

func decodeProfilePayload(c fiber.Ctx) (models.ProfileUpdateData, string, error) {
	var body struct {
		models.ProfileUpdateData
		ProfilePicture string `json:"profile_picture"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return models.ProfileUpdateData{}, "", err
	}
	return body.ProfileUpdateData, body.ProfilePicture, nil
}

// UpdateDirect applies profile changes immediately, without admin review.
func (h *ProfileHandler) UpdateDirect(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	data, picture, err := decodeProfilePayload(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateName(data.FirstName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidateName(data.LastName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	if err := h.db.UpdateProfile(c.Context(), user.ID, data, picture); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return jsonSuccess(c, "profile updated", nil)
}

// RequestUpdate stages a profile change for admin review.
func (h *ProfileHandler) RequestUpdate(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	data, _, err := decodeProfilePayload(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateName(data.FirstName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidateName(data.LastName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	req, err := h.db.CreateUpdateRequest(c.Context(), user.ID, data)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit update request")
	}

	return jsonCreated(c, "update request submitted for review", fiber.Map{
		"request": req,
	})
}
