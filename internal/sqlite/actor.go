package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campusware/peerlink/internal/repository"
)

// ActorRepository implements token-to-actor resolution for SQLite
type ActorRepository struct {
	db *DB
}

// NewActorRepository creates a new ActorRepository
func NewActorRepository(db *DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// ResolveToken maps a hashed bearer token to an actor ID and stamps last use.
func (r *ActorRepository) ResolveToken(ctx context.Context, tokenHash string) (int64, error) {
	var actorID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT actor_id FROM api_tokens WHERE token_hash = ?`, tokenHash).Scan(&actorID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	_, _ = r.db.ExecContext(ctx,
		`UPDATE api_tokens SET last_used = ? WHERE token_hash = ?`, time.Now(), tokenHash)
	return actorID, nil
}

// CreateActor registers an actor ID supplied by the session collaborator.
func (r *ActorRepository) CreateActor(ctx context.Context, actorID int64, displayName string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO actors (id, display_name) VALUES (?, ?)`, actorID, displayName)
	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to create actor: %w", err)
	}
	return nil
}

// CreateToken stores a hashed bearer token for an actor.
func (r *ActorRepository) CreateToken(ctx context.Context, actorID int64, tokenHash, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_tokens (token_hash, actor_id, description) VALUES (?, ?, ?)`,
		tokenHash, actorID, description)
	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}
