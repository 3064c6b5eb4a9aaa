package relationship

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusware/peerlink/internal/repository"
	"github.com/google/uuid"
)

// Mentoring relationships are listed by role; the kind value mirrors the
// originating request kind.
const (
	KindSkillSwap = "skill-swap"
	KindMentoring = "mentoring"
)

// Service handles relationship business logic.
type Service struct {
	relationships Repository
	logger        *slog.Logger
}

// NewService creates a new relationship service.
func NewService(relationships Repository, logger *slog.Logger) *Service {
	return &Service{relationships: relationships, logger: logger}
}

// RecordAccepted creates an active relationship from an accepted request.
// It is called by the request service only; relationships are never created
// directly from UI-level code.
func (s *Service) RecordAccepted(ctx context.Context, kind string, initiatorID, counterpartID int64) error {
	rel := &Relationship{
		ID:            uuid.NewString(),
		Kind:          kind,
		InitiatorID:   initiatorID,
		CounterpartID: counterpartID,
		Status:        StatusActive,
		DateAdded:     time.Now(),
	}

	if err := s.relationships.Create(ctx, rel); err != nil {
		return fmt.Errorf("creating relationship: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("relationship created",
			"relationship_id", rel.ID, "kind", rel.Kind,
			"initiator_id", rel.InitiatorID, "counterpart_id", rel.CounterpartID)
	}
	return nil
}

// Block transitions an active relationship to blocked. Either party may block.
func (s *Service) Block(ctx context.Context, id string, actingActorID int64) (*Relationship, error) {
	return s.transition(ctx, id, actingActorID, StatusActive, StatusBlocked)
}

// Unblock returns a blocked relationship to active. Either party may unblock.
func (s *Service) Unblock(ctx context.Context, id string, actingActorID int64) (*Relationship, error) {
	return s.transition(ctx, id, actingActorID, StatusBlocked, StatusActive)
}

func (s *Service) transition(ctx context.Context, id string, actingActorID int64, from, to Status) (*Relationship, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.relationships.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("loading relationship: %w", err)
	}

	if !current.Involves(actingActorID) {
		return nil, ErrNotAuthorized
	}
	if current.Status != from {
		return nil, ErrInvalidTransition
	}

	updated, err := s.relationships.UpdateStatus(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("updating relationship status: %w", err)
	}
	return updated, nil
}

// Remove hard-deletes the relationship in any status. Irreversible; the core
// keeps no tombstone.
func (s *Service) Remove(ctx context.Context, id string, actingActorID int64) error {
	if id == "" {
		return ErrInvalidInput
	}

	current, err := s.relationships.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("loading relationship: %w", err)
	}
	if !current.Involves(actingActorID) {
		return ErrNotAuthorized
	}

	if err := s.relationships.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("deleting relationship: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("relationship removed", "relationship_id", id, "actor_id", actingActorID)
	}
	return nil
}

// ListAsMentor returns mentoring relationships where the actor is the mentor.
func (s *Service) ListAsMentor(ctx context.Context, actorID int64) ([]Relationship, error) {
	rels, err := s.relationships.ListByCounterpart(ctx, KindMentoring, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing mentor relationships: %w", err)
	}
	return rels, nil
}

// ListAsMentee returns mentoring relationships where the actor is the mentee.
func (s *Service) ListAsMentee(ctx context.Context, actorID int64) ([]Relationship, error) {
	rels, err := s.relationships.ListByInitiator(ctx, KindMentoring, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing mentee relationships: %w", err)
	}
	return rels, nil
}

// ListSwapPartners returns skill-swap relationships for either side.
func (s *Service) ListSwapPartners(ctx context.Context, actorID int64) ([]Relationship, error) {
	rels, err := s.relationships.ListByParty(ctx, KindSkillSwap, actorID)
	if err != nil {
		return nil, fmt.Errorf("listing swap partners: %w", err)
	}
	return rels, nil
}
