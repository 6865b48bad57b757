package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"familyservices/internal/models"
)

// CreateServices inserts a service preferences row for a user.
func (d *DB) CreateServices(ctx context.Context, services *models.Services) error {
	return d.Pool.QueryRow(ctx, `
		INSERT INTO services (user_id, childcare, meal_preparation, light_housekeeping, tutoring, pet_minding)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, services.UserID, services.Childcare, services.MealPreparation,
		services.LightHousekeeping, services.Tutoring, services.PetMinding,
	).Scan(&services.ID, &services.CreatedAt, &services.UpdatedAt)
}

// GetServicesByUser retrieves a user's service preferences.
func (d *DB) GetServicesByUser(ctx context.Context, userID uuid.UUID) (*models.Services, error) {
	var s models.Services
	err := d.Pool.QueryRow(ctx, `
		SELECT id, user_id, childcare, meal_preparation, light_housekeeping, tutoring, pet_minding, created_at, updated_at
		FROM services WHERE user_id = $1
	`, userID).Scan(&s.ID, &s.UserID, &s.Childcare, &s.MealPreparation,
		&s.LightHousekeeping, &s.Tutoring, &s.PetMinding, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrServicesNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateServices overwrites a user's service preference flags.
func (d *DB) UpdateServices(ctx context.Context, userID uuid.UUID, data models.ServiceUpdateData) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE services
		SET childcare = $1, meal_preparation = $2, light_housekeeping = $3, tutoring = $4,
			pet_minding = $5, updated_at = NOW()
		WHERE user_id = $6
	`, data.Childcare, data.MealPreparation, data.LightHousekeeping, data.Tutoring,
		data.PetMinding, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrServicesNotFound
	}
	return nil
}
