package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"familyservices/internal/db"
	"familyservices/internal/email"
)

// AdminHandler manages family accounts: the dashboard listing, approval
// and activation toggles.
type AdminHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(database *db.DB, notifier *email.Notifier) *AdminHandler {
	return &AdminHandler{db: database, notifier: notifier}
}

// ListUsers returns all family accounts with children and service
// preferences, newest first.
func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	families, err := h.db.GetAllFamilies(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}
	return jsonSuccess(c, "users loaded", fiber.Map{"users": families})
}

// GetUser returns a single family account in full, including masked
// payment details and the account's update request history.
func (h *AdminHandler) GetUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.db.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	children, err := h.db.GetChildrenByUser(c.Context(), userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	services, err := h.db.GetServicesByUser(c.Context(), userID)
	if err != nil && !errors.Is(err, db.ErrServicesNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	var paymentView fiber.Map
	payment, err := h.db.GetPaymentByUser(c.Context(), userID)
	if err != nil && !errors.Is(err, db.ErrPaymentNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}
	if payment != nil {
		paymentView = fiber.Map{
			"name_on_card": payment.NameOnCard,
			"card_number":  payment.MaskedCardNumber(),
			"expiry_date":  payment.ExpiryDate,
			"save_card":    payment.SaveCard,
		}
	}

	requests, err := h.db.GetUpdateRequestsByUser(c.Context(), userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	return jsonSuccess(c, "user loaded", fiber.Map{
		"user":            user,
		"children":        children,
		"services":        services,
		"payment":         paymentView,
		"update_requests": requests,
	})
}

// SetApproval toggles the account approval flag and emails the family.
func (h *AdminHandler) SetApproval(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Approved bool `json:"approved"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.db.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update approval")
	}

	if err := h.db.SetUserApproval(c.Context(), userID, body.Approved); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update approval")
	}

	if body.Approved {
		h.notifier.NotifyAccountApproved(user)
		return jsonSuccess(c, "account approved", nil)
	}
	return jsonSuccess(c, "account approval revoked", nil)
}

// SetStatus toggles the account active flag and emails the family. An
// optional reason is included in the deactivation email.
func (h *AdminHandler) SetStatus(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Active bool   `json:"active"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.db.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update status")
	}

	if err := h.db.SetUserActive(c.Context(), userID, body.Active); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update status")
	}

	if body.Active {
		h.notifier.NotifyAccountActivated(user)
		return jsonSuccess(c, "account activated", nil)
	}
	h.notifier.NotifyAccountBlocked(user, body.Reason)
	return jsonSuccess(c, "account deactivated", nil)
}
