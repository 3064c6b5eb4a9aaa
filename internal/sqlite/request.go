package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/repository"
)

// RequestRepository implements request.Repository for SQLite
type RequestRepository struct {
	db *DB
}

var _ request.Repository = (*RequestRepository)(nil)

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request. The partial unique index on live requests is
// the authoritative duplicate-outreach guard.
func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	query := `
		INSERT INTO requests (id, kind, sender_id, receiver_id, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.Kind,
		req.SenderID,
		req.ReceiverID,
		req.Message,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)

	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// Get retrieves a request by ID
func (r *RequestRepository) Get(ctx context.Context, id string) (*request.Request, error) {
	query := `
		SELECT id, kind, sender_id, receiver_id, message, status, created_at, updated_at
		FROM requests
		WHERE id = ?
	`

	var req request.Request
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.Kind,
		&req.SenderID,
		&req.ReceiverID,
		&req.Message,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &req, nil
}

// UpdateStatus performs a compare-and-set status transition and returns the
// updated row.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, from, to request.Status) (*request.Request, error) {
	query := `
		UPDATE requests
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM requests WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check request existence: %w", err)
		}
		if !exists {
			return nil, repository.ErrNotFound
		}
		// Request exists but its status already moved - conflict.
		return nil, repository.ErrConflict
	}

	return r.Get(ctx, id)
}

// ListSent returns all requests sent by the actor, newest first.
func (r *RequestRepository) ListSent(ctx context.Context, senderID int64) ([]request.Request, error) {
	return r.list(ctx, `sender_id`, senderID)
}

// ListReceived returns all requests received by the actor, newest first.
func (r *RequestRepository) ListReceived(ctx context.Context, receiverID int64) ([]request.Request, error) {
	return r.list(ctx, `receiver_id`, receiverID)
}

func (r *RequestRepository) list(ctx context.Context, column string, actorID int64) ([]request.Request, error) {
	query := fmt.Sprintf(`
		SELECT id, kind, sender_id, receiver_id, message, status, created_at, updated_at
		FROM requests
		WHERE %s = ?
		ORDER BY created_at DESC, id
	`, column)

	rows, err := r.db.QueryContext(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var reqs []request.Request
	for rows.Next() {
		var req request.Request
		if err := rows.Scan(
			&req.ID,
			&req.Kind,
			&req.SenderID,
			&req.ReceiverID,
			&req.Message,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return reqs, nil
}
