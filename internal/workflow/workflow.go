// Package workflow orchestrates the admin review of staged update requests:
// status resolution, applying approved changes, and notifying the owner.
package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"familyservices/internal/models"
)

// Store is the persistence surface the workflow needs. Implemented by *db.DB.
type Store interface {
	GetUpdateRequestWithOwner(ctx context.Context, id uuid.UUID) (*models.UpdateRequest, error)
	GetAllUpdateRequests(ctx context.Context) ([]models.UpdateRequest, error)
	ApproveUpdateRequest(ctx context.Context, id uuid.UUID, adminComment string) error
	RejectUpdateRequest(ctx context.Context, id uuid.UUID, adminComment string) error
}

// Notifier informs the request owner about the outcome. Implemented by
// *email.Notifier.
type Notifier interface {
	SendRequestProcessed(ctx context.Context, to, name, requestType string, approved bool) error
}

// Service processes update requests. Dependencies are injected; the
// composition root owns their lifecycle.
type Service struct {
	store    Store
	notifier Notifier
}

// New creates a workflow service.
func New(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Result reports the outcome of processing a request. A failed notification
// does not fail processing; it is reported here instead.
type Result struct {
	RequestType      string `json:"request_type"`
	Status           string `json:"status"`
	NotificationSent bool   `json:"notification_sent"`
}

// ListRequests returns every update request with owner summary, newest
// first. No status filtering; the admin view filters client-side.
func (s *Service) ListRequests(ctx context.Context) ([]models.UpdateRequest, error) {
	return s.store.GetAllUpdateRequests(ctx)
}

// Process resolves a pending request. Approval applies the staged changes
// to the owned entity atomically with the status flip; rejection only flips
// status. Either way the owner is notified afterwards.
//
// Role checks belong to the HTTP boundary, not here.
func (s *Service) Process(ctx context.Context, id uuid.UUID, approved bool, adminComment string) (*Result, error) {
	req, err := s.store.GetUpdateRequestWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &Result{RequestType: req.RequestType, NotificationSent: true}
	if approved {
		if err := s.store.ApproveUpdateRequest(ctx, id, adminComment); err != nil {
			return nil, err
		}
		result.Status = models.StatusApproved
	} else {
		if err := s.store.RejectUpdateRequest(ctx, id, adminComment); err != nil {
			return nil, err
		}
		result.Status = models.StatusRejected
	}

	if err := s.notifier.SendRequestProcessed(ctx, req.OwnerEmail, req.OwnerName, req.RequestType, approved); err != nil {
		slog.Warn("request processed but notification failed",
			"request_id", id, "owner_email", req.OwnerEmail, "error", err)
		result.NotificationSent = false
	}

	return result, nil
}
