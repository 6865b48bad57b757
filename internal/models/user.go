package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleAdmin  = "ADMIN"
	RoleFamily = "FAMILY"
)

// User represents a family account (or the admin account).
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"` // bcrypt hash
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	PostalCode     string     `json:"postal_code"`
	AdditionalInfo string     `json:"additional_info"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ProfilePicture *string    `json:"profile_picture"`
	Role           string     `json:"role"` // ADMIN, FAMILY
	IsAdmin        bool       `json:"is_admin"`
	IsApproved     bool       `json:"is_approved"`
	IsActive       bool       `json:"is_active"`

	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the user's display name for emails and admin listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
