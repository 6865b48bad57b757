package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"familyservices/internal/models"
)

const userColumns = `id, email, password, first_name, last_name, phone, address, city, postal_code,
	additional_info, date_of_birth, profile_picture, role, is_admin, is_approved, is_active,
	reset_token, reset_token_expiry, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.Address, &user.City, &user.PostalCode, &user.AdditionalInfo,
		&user.DateOfBirth, &user.ProfilePicture, &user.Role, &user.IsAdmin,
		&user.IsApproved, &user.IsActive, &user.ResetToken, &user.ResetTokenExpiry,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterFamily creates a family account with its children, service
// preferences and payment details in a single transaction.
func (d *DB) RegisterFamily(ctx context.Context, user *models.User, children []models.Child, services *models.Services, payment *models.Payment) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone, address, city, postal_code,
			additional_info, date_of_birth, profile_picture, role, is_admin, is_approved, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE)
		RETURNING id, created_at, updated_at
	`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Phone,
		user.Address, user.City, user.PostalCode, user.AdditionalInfo,
		user.DateOfBirth, user.ProfilePicture, user.Role, user.IsAdmin, user.IsApproved,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailExists
		}
		return err
	}

	for i := range children {
		children[i].UserID = user.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO children (user_id, first_name, last_name, age, special_notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, user.ID, children[i].FirstName, children[i].LastName, children[i].Age, children[i].SpecialNotes,
		).Scan(&children[i].ID, &children[i].CreatedAt, &children[i].UpdatedAt)
		if err != nil {
			return err
		}
	}

	if services != nil {
		services.UserID = user.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO services (user_id, childcare, meal_preparation, light_housekeeping, tutoring, pet_minding)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, user.ID, services.Childcare, services.MealPreparation, services.LightHousekeeping,
			services.Tutoring, services.PetMinding,
		).Scan(&services.ID, &services.CreatedAt, &services.UpdatedAt)
		if err != nil {
			return err
		}
	}

	if payment != nil {
		payment.UserID = user.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO payments (user_id, name_on_card, card_number, expiry_date, cvv, save_card, agreed_to_terms)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, user.ID, payment.NameOnCard, payment.CardNumber, payment.ExpiryDate,
			payment.CVV, payment.SaveCard, payment.AgreedToTerms,
		).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetUserByEmail retrieves a user by email address.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(d.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetUserByID retrieves a user by their UUID.
func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(d.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UpdateProfile overwrites a user's profile fields. An empty profilePicture
// leaves the stored picture untouched.
func (d *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, data models.ProfileUpdateData, profilePicture string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5,
			postal_code = $6, additional_info = $7,
			profile_picture = COALESCE($8, profile_picture),
			updated_at = NOW()
		WHERE id = $9
	`, data.FirstName, data.LastName, data.Phone, data.Address, data.City,
		data.PostalCode, data.AdditionalInfo, nullIfEmpty(profilePicture), userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetUserApproval sets the account approval flag.
func (d *DB) SetUserApproval(ctx context.Context, userID uuid.UUID, approved bool) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE users SET is_approved = $1, updated_at = NOW() WHERE id = $2`, approved, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetUserActive sets the account active flag.
func (d *DB) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any reset token.
func (d *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a password reset token with its expiry.
func (d *DB) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE users SET reset_token = $1, reset_token_expiry = $2, updated_at = NOW() WHERE id = $3
	`, token, expiry, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetUserByResetToken retrieves a user by an unexpired reset token.
func (d *DB) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	user, err := scanUser(d.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token = $1 AND reset_token_expiry > NOW()`, token))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrResetTokenInvalid
	}
	return user, err
}

// ClearExpiredResetTokens removes reset tokens past their expiry.
// Returns the number of rows cleared.
func (d *DB) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	result, err := d.Pool.Exec(ctx, `
		UPDATE users
		SET reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token IS NOT NULL AND reset_token_expiry <= NOW()
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// FamilyAccount is a user with their children and service preferences,
// as shown on the admin dashboard.
type FamilyAccount struct {
	models.User
	Children []models.Child   `json:"children"`
	Services *models.Services `json:"services"`
}

// GetAllFamilies retrieves all non-admin accounts with children and service
// preferences attached, newest account first.
func (d *DB) GetAllFamilies(ctx context.Context) ([]FamilyAccount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+userColumns+` FROM users WHERE is_admin = FALSE ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []FamilyAccount
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		byID[user.ID] = len(families)
		families = append(families, FamilyAccount{User: *user, Children: []models.Child{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return []FamilyAccount{}, nil
	}

	ids := make([]uuid.UUID, 0, len(families))
	for id := range byID {
		ids = append(ids, id)
	}

	childRows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, first_name, last_name, age, special_notes, created_at, updated_at
		FROM children WHERE user_id = ANY($1) ORDER BY first_name ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer childRows.Close()

	for childRows.Next() {
		var c models.Child
		if err := childRows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Age,
			&c.SpecialNotes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := byID[c.UserID]; ok {
			families[i].Children = append(families[i].Children, c)
		}
	}
	if err := childRows.Err(); err != nil {
		return nil, err
	}

	svcRows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, childcare, meal_preparation, light_housekeeping, tutoring, pet_minding, created_at, updated_at
		FROM services WHERE user_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer svcRows.Close()

	for svcRows.Next() {
		var s models.Services
		if err := svcRows.Scan(&s.ID, &s.UserID, &s.Childcare, &s.MealPreparation,
			&s.LightHousekeeping, &s.Tutoring, &s.PetMinding, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := byID[s.UserID]; ok {
			svc := s
			families[i].Services = &svc
		}
	}
	return families, svcRows.Err()
}
