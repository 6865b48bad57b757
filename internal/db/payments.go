package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"familyservices/internal/models"
)

// CreatePayment inserts a payment details row for a user.
func (d *DB) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return d.Pool.QueryRow(ctx, `
		INSERT INTO payments (user_id, name_on_card, card_number, expiry_date, cvv, save_card, agreed_to_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, payment.UserID, payment.NameOnCard, payment.CardNumber, payment.ExpiryDate,
		payment.CVV, payment.SaveCard, payment.AgreedToTerms,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

// GetPaymentByUser retrieves a user's payment details.
func (d *DB) GetPaymentByUser(ctx context.Context, userID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := d.Pool.QueryRow(ctx, `
		SELECT id, user_id, name_on_card, card_number, expiry_date, cvv, save_card, agreed_to_terms, created_at, updated_at
		FROM payments WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.NameOnCard, &p.CardNumber, &p.ExpiryDate,
		&p.CVV, &p.SaveCard, &p.AgreedToTerms, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePayment overwrites a user's payment details.
func (d *DB) UpdatePayment(ctx context.Context, userID uuid.UUID, payment *models.Payment) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE payments
		SET name_on_card = $1, card_number = $2, expiry_date = $3, cvv = $4,
			save_card = $5, agreed_to_terms = $6, updated_at = NOW()
		WHERE user_id = $7
	`, payment.NameOnCard, payment.CardNumber, payment.ExpiryDate, payment.CVV,
		payment.SaveCard, payment.AgreedToTerms, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
