package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/repository"
)

// RelationshipRepository implements relationship.Repository for SQLite
type RelationshipRepository struct {
	db *DB
}

var _ relationship.Repository = (*RelationshipRepository)(nil)

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// Create inserts a new relationship
func (r *RelationshipRepository) Create(ctx context.Context, rel *relationship.Relationship) error {
	query := `
		INSERT INTO relationships (id, kind, initiator_id, counterpart_id, status, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rel.ID,
		rel.Kind,
		rel.InitiatorID,
		rel.CounterpartID,
		rel.Status,
		rel.DateAdded,
	)

	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

// Get retrieves a relationship by ID
func (r *RelationshipRepository) Get(ctx context.Context, id string) (*relationship.Relationship, error) {
	query := `
		SELECT id, kind, initiator_id, counterpart_id, status, date_added
		FROM relationships
		WHERE id = ?
	`

	var rel relationship.Relationship
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rel.ID,
		&rel.Kind,
		&rel.InitiatorID,
		&rel.CounterpartID,
		&rel.Status,
		&rel.DateAdded,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship: %w", err)
	}
	return &rel, nil
}

// UpdateStatus performs a compare-and-set status transition and returns the
// updated row. Only the status column changes; date_added is preserved.
func (r *RelationshipRepository) UpdateStatus(ctx context.Context, id string, from, to relationship.Status) (*relationship.Relationship, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE relationships SET status = ? WHERE id = ? AND status = ?`,
		to, id, from)
	if err != nil {
		return nil, fmt.Errorf("failed to update relationship status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM relationships WHERE id = ?)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check relationship existence: %w", err)
		}
		if !exists {
			return nil, repository.ErrNotFound
		}
		return nil, repository.ErrConflict
	}

	return r.Get(ctx, id)
}

// Delete removes a relationship permanently
func (r *RelationshipRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByInitiator returns relationships of a kind where the actor initiated.
func (r *RelationshipRepository) ListByInitiator(ctx context.Context, kind string, initiatorID int64) ([]relationship.Relationship, error) {
	return r.list(ctx,
		`SELECT id, kind, initiator_id, counterpart_id, status, date_added
		 FROM relationships WHERE kind = ? AND initiator_id = ?
		 ORDER BY date_added DESC, id`,
		kind, initiatorID)
}

// ListByCounterpart returns relationships of a kind where the actor is the counterpart.
func (r *RelationshipRepository) ListByCounterpart(ctx context.Context, kind string, counterpartID int64) ([]relationship.Relationship, error) {
	return r.list(ctx,
		`SELECT id, kind, initiator_id, counterpart_id, status, date_added
		 FROM relationships WHERE kind = ? AND counterpart_id = ?
		 ORDER BY date_added DESC, id`,
		kind, counterpartID)
}

// ListByParty returns relationships of a kind involving the actor on either side.
func (r *RelationshipRepository) ListByParty(ctx context.Context, kind string, actorID int64) ([]relationship.Relationship, error) {
	return r.list(ctx,
		`SELECT id, kind, initiator_id, counterpart_id, status, date_added
		 FROM relationships WHERE kind = ? AND (initiator_id = ? OR counterpart_id = ?)
		 ORDER BY date_added DESC, id`,
		kind, actorID, actorID)
}

func (r *RelationshipRepository) list(ctx context.Context, query string, args ...any) ([]relationship.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var rels []relationship.Relationship
	for rows.Next() {
		var rel relationship.Relationship
		if err := rows.Scan(
			&rel.ID,
			&rel.Kind,
			&rel.InitiatorID,
			&rel.CounterpartID,
			&rel.Status,
			&rel.DateAdded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate relationships: %w", err)
	}
	return rels, nil
}
