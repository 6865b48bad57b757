package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailExists       = errors.New("an account with this email already exists")
	ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

	// Child errors
	ErrChildNotFound = errors.New("child not found or does not belong to user")

	// Services errors
	ErrServicesNotFound = errors.New("services not found for user")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment details not found for user")

	// Update request errors
	ErrRequestNotFound = errors.New("update request not found")
)
