package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"familyservices/internal/db"
	"familyservices/internal/models"
	"familyservices/internal/validation"
)

// PaymentHandler manages payment detail updates. Payment changes never go
// through the approval queue; card data has no business sitting in a
// request payload.
type PaymentHandler struct {
	db *db.DB
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(database *db.DB) *PaymentHandler {
	return &PaymentHandler{db: database}
}

// UpdateDirect overwrites the user's stored payment details.
func (h *PaymentHandler) UpdateDirect(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var body struct {
		NameOnCard    string `json:"name_on_card"`
		CardNumber    string `json:"card_number"`
		ExpiryDate    string `json:"expiry_date"`
		CVV           string `json:"cvv"`
		SaveCard      bool   `json:"save_card"`
		AgreedToTerms bool   `json:"agreed_to_terms"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateCardNumber(body.CardNumber); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidateCVV(body.CVV); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	payment := &models.Payment{
		NameOnCard:    body.NameOnCard,
		CardNumber:    body.CardNumber,
		ExpiryDate:    body.ExpiryDate,
		CVV:           body.CVV,
		SaveCard:      body.SaveCard,
		AgreedToTerms: body.AgreedToTerms,
	}
	if err := h.db.UpdatePayment(c.Context(), user.ID, payment); err != nil {
		if errors.Is(err, db.ErrPaymentNotFound) {
			// No row from registration; create one instead.
			payment.UserID = user.ID
			if err := h.db.CreatePayment(c.Context(), payment); err != nil {
				return jsonError(c, fiber.StatusInternalServerError, "failed to update payment details")
			}
			return jsonSuccess(c, "payment details saved", nil)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update payment details")
	}

	return jsonSuccess(c, "payment details updated", nil)
}
