package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"golang.org/x/crypto/bcrypt"

	"familyservices/internal/config"
	"familyservices/internal/db"
	"familyservices/internal/email"
	"familyservices/internal/models"
	"familyservices/internal/validation"
)

// bcryptCost is deliberately above the library default.
const bcryptCost = 12

const resetTokenTTL = time.Hour

// AuthHandler handles registration, login and password management.
type AuthHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *AuthHandler {
	return &AuthHandler{db: database, cfg: cfg, notifier: notifier}
}

type registerChild struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          int    `json:"age"`
	SpecialNotes string `json:"special_notes"`
}

type registerRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	PostalCode     string  `json:"postal_code"`
	AdditionalInfo string  `json:"additional_info"`
	DateOfBirth    *string `json:"date_of_birth"`

	Children []registerChild `json:"children"`

	Services *struct {
		Childcare         bool `json:"childcare"`
		MealPreparation   bool `json:"meal_preparation"`
		LightHousekeeping bool `json:"light_housekeeping"`
		Tutoring          bool `json:"tutoring"`
		PetMinding        bool `json:"pet_minding"`
	} `json:"services"`

	Payment *struct {
		NameOnCard    string `json:"name_on_card"`
		CardNumber    string `json:"card_number"`
		ExpiryDate    string `json:"expiry_date"`
		CVV           string `json:"cvv"`
		SaveCard      bool   `json:"save_card"`
		AgreedToTerms bool   `json:"agreed_to_terms"`
	} `json:"payment"`
}

// Register creates a family account with children, service preferences and
// payment details in one transaction. Emails listed as site admins become
// pre-approved admin accounts.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body registerRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateEmail(body.Email); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidatePassword(body.Password); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidateName(body.FirstName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}
	if valid, msg := validation.ValidateName(body.LastName); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	var dob *time.Time
	if body.DateOfBirth != nil && *body.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", "date_of_birth must be YYYY-MM-DD")
		}
		if valid, msg := validation.ValidateDateOfBirth(parsed); !valid {
			return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
		}
		dob = &parsed
	}

	if body.Payment != nil {
		if valid, msg := validation.ValidateCardNumber(body.Payment.CardNumber); !valid {
			return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
		}
		if valid, msg := validation.ValidateCVV(body.Payment.CVV); !valid {
			return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
		}
		if !body.Payment.AgreedToTerms {
			return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", "terms must be accepted")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	emailAddr := validation.NormalizeEmail(body.Email)
	isAdmin := h.cfg.IsAdminEmail(emailAddr)

	user := &models.User{
		Email:          emailAddr,
		Password:       string(hash),
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Phone:          body.Phone,
		Address:        body.Address,
		City:           body.City,
		PostalCode:     body.PostalCode,
		AdditionalInfo: body.AdditionalInfo,
		DateOfBirth:    dob,
		Role:           models.RoleFamily,
		IsAdmin:        isAdmin,
		IsApproved:     isAdmin, // admin accounts skip the approval queue
	}
	if isAdmin {
		user.Role = models.RoleAdmin
	}

	children := make([]models.Child, len(body.Children))
	for i, ch := range body.Children {
		children[i] = models.Child{
			FirstName:    ch.FirstName,
			LastName:     ch.LastName,
			Age:          ch.Age,
			SpecialNotes: ch.SpecialNotes,
		}
	}

	var services *models.Services
	if body.Services != nil {
		services = &models.Services{
			Childcare:         body.Services.Childcare,
			MealPreparation:   body.Services.MealPreparation,
			LightHousekeeping: body.Services.LightHousekeeping,
			Tutoring:          body.Services.Tutoring,
			PetMinding:        body.Services.PetMinding,
		}
	}

	var payment *models.Payment
	if body.Payment != nil {
		payment = &models.Payment{
			NameOnCard:    body.Payment.NameOnCard,
			CardNumber:    body.Payment.CardNumber,
			ExpiryDate:    body.Payment.ExpiryDate,
			CVV:           body.Payment.CVV,
			SaveCard:      body.Payment.SaveCard,
			AgreedToTerms: body.Payment.AgreedToTerms,
		}
	}

	if err := h.db.RegisterFamily(c.Context(), user, children, services, payment); err != nil {
		if errors.Is(err, db.ErrEmailExists) {
			return jsonError(c, fiber.StatusConflict, "an account with this email already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	h.notifier.NotifyRegistration(user)

	return jsonCreated(c, "registration received; your account is pending approval", fiber.Map{
		"user": user,
	})
}

// Login authenticates with email and password and establishes a session.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.db.GetUserByEmail(c.Context(), validation.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return jsonError(c, fiber.StatusInternalServerError, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	if !user.IsApproved {
		return jsonError(c, fiber.StatusForbidden, "account is pending approval")
	}
	if !user.IsActive {
		return jsonError(c, fiber.StatusForbidden, "account is deactivated")
	}

	sess := session.FromContext(c)
	if sess == nil {
		return jsonError(c, fiber.StatusInternalServerError, "session not available")
	}
	if err := sess.Regenerate(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "login failed")
	}
	sess.Set("user_id", user.ID.String())

	return jsonSuccess(c, "logged in", fiber.Map{"user": user})
}

// Logout clears the user session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		sess.Destroy()
	}
	return jsonSuccess(c, "logged out", nil)
}

// ResetPassword issues a password reset token and emails it to the account.
// The response never reveals whether the email exists.
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	const genericMsg = "if an account exists for this email, a reset link has been sent"

	user, err := h.db.GetUserByEmail(c.Context(), validation.NormalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonSuccess(c, genericMsg, nil)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to process request")
	}

	token := generateToken()
	if err := h.db.SetResetToken(c.Context(), user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to process request")
	}

	h.notifier.SendPasswordReset(user, token)

	return jsonSuccess(c, genericMsg, nil)
}

// NewPassword consumes a reset token and sets a new password.
func (h *AuthHandler) NewPassword(c fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidatePassword(body.Password); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	user, err := h.db.GetUserByResetToken(c.Context(), body.Token)
	if err != nil {
		if errors.Is(err, db.ErrResetTokenInvalid) {
			return jsonError(c, fiber.StatusBadRequest, "reset token is invalid or expired")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	if err := h.db.UpdatePassword(c.Context(), user.ID, string(hash)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	return jsonSuccess(c, "password updated", nil)
}

// ChangePassword updates the password of the authenticated user.
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.CurrentPassword)); err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "current password is incorrect")
	}

	if valid, msg := validation.ValidatePassword(body.NewPassword); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcryptCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to change password")
	}

	if err := h.db.UpdatePassword(c.Context(), user.ID, string(hash)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to change password")
	}

	return jsonSuccess(c, "password changed", nil)
}

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
