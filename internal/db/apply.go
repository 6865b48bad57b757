package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"familyservices/internal/models"
)

// applyRequest mutates the entity targeted by an approved update request,
// inside the approval transaction. The caller has already confirmed the
// request was PENDING; status is never re-checked here.
//
// A payload that fails to decode (unknown type, malformed data) is skipped
// with a warning rather than failing the approval.
func applyRequest(ctx context.Context, tx pgx.Tx, req *models.UpdateRequest) error {
	data, err := req.Data()
	if err != nil {
		slog.Warn("skipping update request with undecodable payload",
			"request_id", req.ID, "request_type", req.RequestType, "error", err)
		return nil
	}

	switch data := data.(type) {
	case models.ProfileUpdateData:
		_, err := tx.Exec(ctx, `
			UPDATE users
			SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5,
				postal_code = $6, additional_info = $7, updated_at = NOW()
			WHERE id = $8
		`, data.FirstName, data.LastName, data.Phone, data.Address, data.City,
			data.PostalCode, data.AdditionalInfo, req.UserID)
		return err

	case models.ServiceUpdateData:
		result, err := tx.Exec(ctx, `
			UPDATE services
			SET childcare = $1, meal_preparation = $2, light_housekeeping = $3,
				tutoring = $4, pet_minding = $5, updated_at = NOW()
			WHERE user_id = $6
		`, data.Childcare, data.MealPreparation, data.LightHousekeeping,
			data.Tutoring, data.PetMinding, req.UserID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrServicesNotFound
		}
		return nil

	case models.ChildUpdateData:
		// Scoped to the request owner: a payload naming another family's
		// child must not mutate it.
		result, err := tx.Exec(ctx, `
			UPDATE children
			SET first_name = $1, last_name = $2, age = $3, special_notes = $4, updated_at = NOW()
			WHERE id = $5 AND user_id = $6
		`, data.FirstName, data.LastName, data.Age, data.SpecialNotes,
			data.TargetChildID(), req.UserID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrChildNotFound
		}
		return nil

	case models.ChildAddData:
		_, err := tx.Exec(ctx, `
			INSERT INTO children (user_id, first_name, last_name, age, special_notes)
			VALUES ($1, $2, $3, $4, $5)
		`, req.UserID, data.FirstName, data.LastName, data.Age, data.SpecialNotes)
		return err
	}

	return nil
}
