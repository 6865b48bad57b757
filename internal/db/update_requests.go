package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"familyservices/internal/models"
)

// CreateUpdateRequest stages a change to account-owned data for admin review.
// Requests always start PENDING. Nothing prevents a user from holding several
// pending requests of the same type; the admin resolves them in order.
func (d *DB) CreateUpdateRequest(ctx context.Context, userID uuid.UUID, data models.RequestData) (*models.UpdateRequest, error) {
	raw, err := models.EncodeRequestData(data)
	if err != nil {
		return nil, err
	}

	req := &models.UpdateRequest{
		UserID:      userID,
		RequestType: data.RequestType(),
		RequestData: raw,
	}
	err = d.Pool.QueryRow(ctx, `
		INSERT INTO update_requests (user_id, request_type, request_data)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at
	`, userID, req.RequestType, raw).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetUpdateRequestByID retrieves a single update request.
func (d *DB) GetUpdateRequestByID(ctx context.Context, id uuid.UUID) (*models.UpdateRequest, error) {
	var req models.UpdateRequest
	err := d.Pool.QueryRow(ctx, `
		SELECT id, user_id, request_type, request_data, status, admin_comment, created_at
		FROM update_requests WHERE id = $1
	`, id).Scan(&req.ID, &req.UserID, &req.RequestType, &req.RequestData,
		&req.Status, &req.AdminComment, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetUpdateRequestWithOwner retrieves an update request with the owning
// account's name and email, for notification purposes.
func (d *DB) GetUpdateRequestWithOwner(ctx context.Context, id uuid.UUID) (*models.UpdateRequest, error) {
	var req models.UpdateRequest
	err := d.Pool.QueryRow(ctx, `
		SELECT r.id, r.user_id, r.request_type, r.request_data, r.status, r.admin_comment, r.created_at,
			u.first_name || ' ' || u.last_name, u.email
		FROM update_requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`, id).Scan(&req.ID, &req.UserID, &req.RequestType, &req.RequestData,
		&req.Status, &req.AdminComment, &req.CreatedAt, &req.OwnerName, &req.OwnerEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetAllUpdateRequests returns every update request with owner summary,
// newest first. Status filtering is left to the caller.
func (d *DB) GetAllUpdateRequests(ctx context.Context) ([]models.UpdateRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT r.id, r.user_id, r.request_type, r.request_data, r.status, r.admin_comment, r.created_at,
			u.first_name || ' ' || u.last_name, u.email
		FROM update_requests r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUpdateRequests(rows, true)
}

// GetUpdateRequestsByUser returns a user's update requests, newest first.
func (d *DB) GetUpdateRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.UpdateRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, request_type, request_data, status, admin_comment, created_at
		FROM update_requests WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUpdateRequests(rows, false)
}

// GetRecentRequestsByUser returns the requests shown on the family
// dashboard: everything pending, plus requests resolved within the last
// seven days. Newest first.
func (d *DB) GetRecentRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.UpdateRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, request_type, request_data, status, admin_comment, created_at
		FROM update_requests
		WHERE user_id = $1
			AND (status = $2 OR created_at >= NOW() - INTERVAL '7 days')
		ORDER BY created_at DESC
	`, userID, models.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUpdateRequests(rows, false)
}

func scanUpdateRequests(rows pgx.Rows, withOwner bool) ([]models.UpdateRequest, error) {
	var requests []models.UpdateRequest
	for rows.Next() {
		var req models.UpdateRequest
		dest := []any{&req.ID, &req.UserID, &req.RequestType, &req.RequestData,
			&req.Status, &req.AdminComment, &req.CreatedAt}
		if withOwner {
			dest = append(dest, &req.OwnerName, &req.OwnerEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if requests == nil {
		requests = []models.UpdateRequest{}
	}
	return requests, rows.Err()
}

// ApproveUpdateRequest resolves a pending request as APPROVED and applies
// its payload to the owned entity, all in one transaction. If application
// fails the status flip rolls back and the request stays PENDING. A request
// that is missing or already resolved returns ErrRequestNotFound; the row
// lock plus status precondition means two concurrent approvals cannot both
// succeed.
func (d *DB) ApproveUpdateRequest(ctx context.Context, id uuid.UUID, adminComment string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var req models.UpdateRequest
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, request_type, request_data FROM update_requests
		WHERE id = $1 AND status = $2
		FOR UPDATE
	`, id, models.StatusPending).Scan(&req.ID, &req.UserID, &req.RequestType, &req.RequestData)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE update_requests SET status = $1, admin_comment = $2 WHERE id = $3
	`, models.StatusApproved, nullIfEmpty(adminComment), id)
	if err != nil {
		return err
	}

	if err := applyRequest(ctx, tx, &req); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RejectUpdateRequest resolves a pending request as REJECTED. The applier is
// never invoked; the owned entity is untouched.
func (d *DB) RejectUpdateRequest(ctx context.Context, id uuid.UUID, adminComment string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE update_requests SET status = $1, admin_comment = $2
		WHERE id = $3 AND status = $4
	`, models.StatusRejected, nullIfEmpty(adminComment), id, models.StatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// RequestCount is an aggregate of update requests by type and status,
// consumed by the metrics collector.
type RequestCount struct {
	RequestType string
	Status      string
	Count       int64
}

// CountUpdateRequests aggregates update requests by type and status.
func (d *DB) CountUpdateRequests(ctx context.Context) ([]RequestCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT request_type, status, COUNT(*)
		FROM update_requests
		GROUP BY request_type, status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []RequestCount
	for rows.Next() {
		var c RequestCount
		if err := rows.Scan(&c.RequestType, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
