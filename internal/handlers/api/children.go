package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"familyservices/internal/db"
	"familyservices/internal/models"
	"familyservices/internal/validation"
)

// ChildHandler manages child records, both direct writes and staged
// update requests.
type ChildHandler struct {
	db *db.DB
}

// NewChildHandler creates a new child handler.
func NewChildHandler(database *db.DB) *ChildHandler {
	return &ChildHandler{db: database}
}

type childPayload struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          int    `json:"age"`
	SpecialNotes string `json:"special_notes"`
}

func validateChildPayload(p childPayload) (bool, string) {
	if valid, msg := validation.ValidateName(p.FirstName); !valid {
		return false, msg
	}
	if p.Age < 0 || p.Age > 17 {
		return false, "age must be between 0 and 17"
	}
	return true, ""
}

// AddDirect creates a child record immediately.
func (h *ChildHandler) AddDirect(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var body childPayload
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validateChildPayload(body); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	child := &models.Child{
		UserID:       user.ID,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Age:          body.Age,
		SpecialNotes: body.SpecialNotes,
	}
	if err := h.db.CreateChild(c.Context(), child); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to add child")
	}

	return jsonCreated(c, "child added", fiber.Map{"child": child})
}

// UpdateDirect overwrites a child record immediately. The write is scoped
// to the authenticated owner.
func (h *ChildHandler) UpdateDirect(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid child id")
	}

	var body childPayload
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validateChildPayload(body); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	data := models.ChildUpdateData{
		ChildID:      childID,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Age:          body.Age,
		SpecialNotes: body.SpecialNotes,
	}
	if err := h.db.UpdateChildOwned(c.Context(), childID, user.ID, data); err != nil {
		if errors.Is(err, db.ErrChildNotFound) {
			return jsonError(c, fiber.StatusNotFound, "child not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update child")
	}

	return jsonSuccess(c, "child updated", nil)
}

// RequestAdd stages a new child for admin review.
func (h *ChildHandler) RequestAdd(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var body childPayload
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validateChildPayload(body); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	data := models.ChildAddData{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Age:          body.Age,
		SpecialNotes: body.SpecialNotes,
	}
	req, err := h.db.CreateUpdateRequest(c.Context(), user.ID, data)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit update request")
	}

	return jsonCreated(c, "update request submitted for review", fiber.Map{"request": req})
}

// RequestUpdate stages a child change for admin review. Ownership of the
// target child is checked at submission so a stale or foreign id is
// rejected before it ever reaches the approval queue.
func (h *ChildHandler) RequestUpdate(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var body struct {
		ChildID string `json:"child_id"`
		childPayload
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validateChildPayload(body.childPayload); !valid {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "validation failed", msg)
	}

	childID, err := uuid.Parse(body.ChildID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid child id")
	}

	if _, err := h.db.GetChildByIDAndUser(c.Context(), childID, user.ID); err != nil {
		if errors.Is(err, db.ErrChildNotFound) {
			return jsonError(c, fiber.StatusNotFound, "child not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit update request")
	}

	data := models.ChildUpdateData{
		ChildID:      childID,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Age:          body.Age,
		SpecialNotes: body.SpecialNotes,
	}
	req, err := h.db.CreateUpdateRequest(c.Context(), user.ID, data)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit update request")
	}

	return jsonCreated(c, "update request submitted for review", fiber.Map{"request": req})
}
