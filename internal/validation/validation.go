// Package validation provides input validation for registration and
// account data.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// EmailPattern is a pragmatic email check; deliverability is confirmed by
// the registration email anyway.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidateEmail checks if an email address is plausible.
func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "email is required"
	}
	if len(email) > 254 {
		return false, "email is too long"
	}
	if !EmailPattern.MatchString(email) {
		return false, "invalid email format"
	}
	return true, ""
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "password must be at least 8 characters"
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return false, "password must be at most 72 characters"
	}
	return true, ""
}

// ValidateName checks a first or last name.
func ValidateName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "name is required"
	}
	if len(name) > 100 {
		return false, "name is too long"
	}
	return true, ""
}

// ValidateDateOfBirth rejects dates in the future or implausibly old.
func ValidateDateOfBirth(dob time.Time) (bool, string) {
	now := time.Now()
	if dob.After(now) {
		return false, "date of birth cannot be in the future"
	}
	if dob.Before(now.AddDate(-130, 0, 0)) {
		return false, "invalid date of birth"
	}
	return true, ""
}

// ValidateCardNumber checks a payment card number is 13 to 19 digits.
// Spaces and hyphens are stripped before checking.
func ValidateCardNumber(number string) (bool, string) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if cleaned == "" {
		return false, "card number is required"
	}
	if len(cleaned) < 13 || len(cleaned) > 19 || !digitsOnly.MatchString(cleaned) {
		return false, "invalid card number"
	}
	return true, ""
}

// ValidateCVV checks a card verification code is 3 or 4 digits.
func ValidateCVV(cvv string) (bool, string) {
	if len(cvv) < 3 || len(cvv) > 4 || !digitsOnly.MatchString(cvv) {
		return false, "invalid cvv"
	}
	return true, ""
}
