package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"familyservices/internal/db"
	"familyservices/internal/metrics"
	"familyservices/internal/workflow"
)

// RequestHandler exposes the update-request approval queue to admins.
type RequestHandler struct {
	workflow *workflow.Service
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(wf *workflow.Service) *RequestHandler {
	return &RequestHandler{workflow: wf}
}

// List returns every update request with owner summary, newest first.
func (h *RequestHandler) List(c fiber.Ctx) error {
	requests, err := h.workflow.ListRequests(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch update requests")
	}
	return jsonSuccess(c, "update requests loaded", fiber.Map{"requests": requests})
}

// Process resolves a pending request as approved or rejected.
func (h *RequestHandler) Process(c fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var body struct {
		Approved     bool   `json:"approved"`
		AdminComment string `json:"admin_comment"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.workflow.Process(c.Context(), requestID, body.Approved, body.AdminComment)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "update request not found or already processed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to process request")
	}

	metrics.RecordRequestProcessed(result.RequestType, result.Status)

	return jsonSuccess(c, "request processed", fiber.Map{"result": result})
}
