package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment holds a family's payment details. One row per user.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	NameOnCard    string    `json:"name_on_card"`
	CardNumber    string    `json:"card_number"`
	ExpiryDate    string    `json:"expiry_date"`
	CVV           string    `json:"-"`
	SaveCard      bool      `json:"save_card"`
	AgreedToTerms bool      `json:"agreed_to_terms"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MaskedCardNumber returns the card number with all but the last four digits hidden.
func (p *Payment) MaskedCardNumber() string {
	if len(p.CardNumber) <= 4 {
		return p.CardNumber
	}
	masked := make([]byte, len(p.CardNumber))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], p.CardNumber[len(p.CardNumber)-4:])
	return string(masked)
}
