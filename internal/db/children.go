package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"familyservices/internal/models"
)

// CreateChild inserts a new child record for a user.
func (d *DB) CreateChild(ctx context.Context, child *models.Child) error {
	return d.Pool.QueryRow(ctx, `
		INSERT INTO children (user_id, first_name, last_name, age, special_notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, child.UserID, child.FirstName, child.LastName, child.Age, child.SpecialNotes,
	).Scan(&child.ID, &child.CreatedAt, &child.UpdatedAt)
}

// GetChildrenByUser returns a user's children ordered by first name.
func (d *DB) GetChildrenByUser(ctx context.Context, userID uuid.UUID) ([]models.Child, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, first_name, last_name, age, special_notes, created_at, updated_at
		FROM children WHERE user_id = $1 ORDER BY first_name ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var c models.Child
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Age,
			&c.SpecialNotes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

// GetChildByIDAndUser retrieves a child only if it belongs to the given user.
func (d *DB) GetChildByIDAndUser(ctx context.Context, childID, userID uuid.UUID) (*models.Child, error) {
	var c models.Child
	err := d.Pool.QueryRow(ctx, `
		SELECT id, user_id, first_name, last_name, age, special_notes, created_at, updated_at
		FROM children WHERE id = $1 AND user_id = $2
	`, childID, userID).Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Age,
		&c.SpecialNotes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateChildOwned overwrites a child's fields. The update is scoped to the
// owning user so one account can never mutate another account's child.
func (d *DB) UpdateChildOwned(ctx context.Context, childID, userID uuid.UUID, data models.ChildUpdateData) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE children
		SET first_name = $1, last_name = $2, age = $3, special_notes = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`, data.FirstName, data.LastName, data.Age, data.SpecialNotes, childID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrChildNotFound
	}
	return nil
}
