package models

import (
	"time"

	"github.com/google/uuid"
)

// Services holds a family's service preferences. One row per user.
type Services struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Childcare         bool      `json:"childcare"`
	MealPreparation   bool      `json:"meal_preparation"`
	LightHousekeeping bool      `json:"light_housekeeping"`
	Tutoring          bool      `json:"tutoring"`
	PetMinding        bool      `json:"pet_minding"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
